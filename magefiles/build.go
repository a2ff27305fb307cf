//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the preview binary into bin/quadrant.
func (Build) Preview() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/quadrant", "."), withStream()); err != nil {
		return err
	}
	return nil
}
