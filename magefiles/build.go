//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the release binary, without validation layers.
func (Build) Release() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "lumine", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds the debug binary with the Khronos validation layer enabled.
func (Build) Debug() error {
	if _, err := executeCmd("go", withArgs("build", "-tags", "debug", "-o", "lumine-debug", "."), withStream()); err != nil {
		return err
	}
	return nil
}
