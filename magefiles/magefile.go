//go:build mage

// Build targets for the vocaudio tools. Run with `mage <target>`.
package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Build compiles both binaries into ./bin.
func Build() error {
	mg.Deps(Vet)
	for _, name := range []string{"vocaudio", "vocclass"} {
		fmt.Printf("Building %s...\n", name)
		if err := sh.RunV("go", "build", "-o", "bin/"+name, "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Test runs all package tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet across the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Install installs both binaries with go install.
func Install() error {
	for _, name := range []string{"vocaudio", "vocclass"} {
		if err := sh.RunV("go", "install", "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
