package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/d3d9ui/engine/core"
)

// Config tunes the overlay. It is usually read from a TOML file shipped next
// to the injected module.
type Config struct {
	// Reactive skips geometry uploads on frames the toolkit does not repaint.
	Reactive bool `toml:"reactive"`
	// Tolerant ignores device failures instead of aborting.
	Tolerant bool   `toml:"tolerant"`
	LogLevel string `toml:"log_level"`
	// LogFile receives log output when set; the default is stderr.
	LogFile string `toml:"log_file"`

	VertexCapacity uint32 `toml:"vertex_capacity"`
	IndexCapacity  uint32 `toml:"index_capacity"`
	BufferSlack    uint32 `toml:"buffer_slack"`
	ScratchSlack   uint32 `toml:"scratch_slack"`

	// MetricsInterval is the number of frames between metric reports; 0 disables them.
	MetricsInterval uint64 `toml:"metrics_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		Reactive:        false,
		Tolerant:        false,
		LogLevel:        "info",
		LogFile:         "",
		VertexCapacity:  16384,
		IndexCapacity:   16384,
		BufferSlack:     5000,
		ScratchSlack:    512,
		MetricsInterval: 600,
	}
}

func (c *Config) Validate() error {
	if c.VertexCapacity == 0 || c.IndexCapacity == 0 {
		return fmt.Errorf("vertex_capacity and index_capacity must be > 0")
	}
	return nil
}

// ParseConfig decodes TOML over the defaults. Unknown keys are rejected so
// typos do not go unnoticed.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ConfigWatcher reloads a config file whenever it changes. The newest valid
// config waits in a slot until the engine takes it at the start of a frame.
type ConfigWatcher struct {
	path     string
	fsnotify *fsnotify.Watcher
	pending  atomic.Pointer[Config]
	done     chan struct{}
	wg       sync.WaitGroup
	closed   bool
}

// WatchConfig watches the directory of path, since editors often replace a
// file rather than write to it.
func WatchConfig(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:     abs,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.start()
	return cw, nil
}

func (cw *ConfigWatcher) start() {
	defer cw.wg.Done()
	for {
		select {
		case e, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				cw.reload()
			}

		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-cw.done:
			return
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		// a half-written file fails to parse; the next write event retries
		core.LogWarn("config reload skipped: %s", err)
		return
	}
	cw.pending.Store(cfg)
	core.LogDebug("config %s reloaded", cw.path)
}

// Take returns the config loaded since the last call, or nil.
func (cw *ConfigWatcher) Take() *Config {
	return cw.pending.Swap(nil)
}

func (cw *ConfigWatcher) Close() error {
	if cw.closed {
		return errors.New("config watcher already closed")
	}
	cw.closed = true
	close(cw.done)
	err := cw.fsnotify.Close()
	cw.wg.Wait()
	return err
}
