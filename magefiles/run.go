//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	fmt.Println("Run tests...")
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the tests with the race detector; the config watcher is the only
// concurrent part.
func (Test) Race() error {
	if _, err := executeCmd("go", withArgs("test", "-race", "./engine/..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Type-checks the Windows-only device adapter from any host.
func (Test) Windows() error {
	for _, arch := range windowsArchs {
		if _, err := executeCmd("go", withArgs("vet", "./engine/renderer/d3d9/"), withEnv("GOOS=windows", "GOARCH="+arch), withStream()); err != nil {
			return err
		}
	}
	return nil
}

type Run mg.Namespace

// Checks a config file and watches it for changes.
func (Run) Check(path string) error {
	mg.Deps(Build.Tool)
	if _, err := executeCmd("bin/d3d9ui", withArgs("-watch", path), withStream()); err != nil {
		return err
	}
	return nil
}
