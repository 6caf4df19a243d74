//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every test with the debug overlays compiled in.
func (Test) All() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./engine/...", "./testbed/..."), withStream())
	return err
}

// Runs every test with the shipping build tag, debug overlays compiled out.
func (Test) Shipping() error {
	_, err := executeCmd("go", withArgs("test", "-tags", "shipping", "./engine/...", "./testbed/..."), withStream())
	return err
}

// Tidies the module and runs go vet for both build flavours.
func (Test) Vet() error {
	mg.Deps(tidy)
	if _, err := executeCmd("go", withArgs("vet", "./engine/...", "./testbed/...")); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("vet", "-tags", "shipping", "./engine/...", "./testbed/..."))
	return err
}
