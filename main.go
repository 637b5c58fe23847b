/*
d3d9ui checks overlay configuration files before they are shipped next to an
injected module. With -watch it keeps reporting every reload, the way the
overlay itself would pick them up.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/d3d9ui/engine"
	"github.com/spaghettifunk/d3d9ui/engine/core"
)

func main() {
	watch := flag.Bool("watch", false, "keep running and report every reload")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-watch] overlay.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := engine.LoadConfig(path)
	if err != nil {
		core.LogFatal("%s", err)
	}
	if err := printConfig(cfg); err != nil {
		core.LogFatal("%s", err)
	}
	if !*watch {
		return
	}

	w, err := engine.WatchConfig(path)
	if err != nil {
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-sigCh:
			if err := w.Close(); err != nil {
				core.LogError("%s", err)
			}
			return
		case <-ticker.C:
			if cfg := w.Take(); cfg != nil {
				core.LogInfo("%s reloaded", path)
				if err := printConfig(cfg); err != nil {
					core.LogError("%s", err)
				}
			}
		}
	}
}

func printConfig(cfg *engine.Config) error {
	enc := toml.NewEncoder(os.Stdout)
	return enc.Encode(cfg)
}
