//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs every package test.
func (Test) All() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Runs only the engine package tests.
func (Test) Engine() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withDir("engine"), withStream()); err != nil {
		return err
	}
	return nil
}
