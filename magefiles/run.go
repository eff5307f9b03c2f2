//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the engine with validation layers enabled.
func (Run) Debug() error {
	fmt.Println("Run engine (debug)...")
	if _, err := executeCmd("go", withArgs("run", "-tags", "debug", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs the engine without validation layers.
func (Run) Engine() error {
	fmt.Println("Run engine...")
	if _, err := executeCmd("go", withArgs("run", "main.go"), withStream()); err != nil {
		return err
	}
	return nil
}
