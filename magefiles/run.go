//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Opens the preview window on the configured scene.
func (Run) Preview() error {
	fmt.Println("Run preview...")
	if _, err := executeCmd("go", withArgs("run", "."), withStream()); err != nil {
		return err
	}
	return nil
}

// Renders the configured scene headless to snapshot.webp.
func (Run) Snapshot() error {
	fmt.Println("Render snapshot...")
	if _, err := executeCmd("go", withArgs("run", ".", "-snapshot", "snapshot.webp"), withStream()); err != nil {
		return err
	}
	return nil
}
