// Package main is the entry point for the hhscreen CLI.
package main

import (
	"os"

	"github.com/ddanilov/hhscreen/cmd/hhscreen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
