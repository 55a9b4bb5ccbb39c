//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Build

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "-count=1", "./...")
}

// Vet runs go vet.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Build compiles the api server and the swapctl cli into ./bin.
func Build() error {
	mg.Deps(Vet)

	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	if commit == "" {
		commit = "undefined"
	}
	fmt.Println("building", commit)

	for _, cmd := range []string{"api", "swapctl"} {
		if err := sh.RunV("go", "build", "-o", "bin/"+cmd, "./cmd/"+cmd); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll("bin")
}
