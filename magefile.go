//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles both binaries into ./bin.
func Build() error {
	mg.Deps(BuildGlossaryctl, BuildGlosstransfer)
	return nil
}

// BuildGlossaryctl compiles the entry manager binary.
func BuildGlossaryctl() error {
	fmt.Println("Building glossaryctl...")
	return sh.Run("go", "build", "-o", "bin/glossaryctl", "./cmd/glossaryctl")
}

// BuildGlosstransfer compiles the transfer tool binary.
func BuildGlosstransfer() error {
	fmt.Println("Building glosstransfer...")
	return sh.Run("go", "build", "-o", "bin/glosstransfer", "./cmd/glosstransfer")
}

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	return sh.Rm("bin")
}
