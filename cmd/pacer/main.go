// Package main is the entry point for the pacer CLI binary.
package main

import (
	"os"

	"github.com/pacerdev/pacer/cmd/pacer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
