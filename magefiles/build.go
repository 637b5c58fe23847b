//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var windowsArchs = []string{"amd64", "386"}

// Cross-compiles the library for every Windows architecture a host may run.
func (Build) Library() error {
	for _, arch := range windowsArchs {
		if _, err := executeCmd("go", withArgs("build", "./engine/..."), withEnv("GOOS=windows", "GOARCH="+arch), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Builds the config checker for the current platform.
func (Build) Tool() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/d3d9ui", "."), withStream()); err != nil {
		return err
	}
	return nil
}
