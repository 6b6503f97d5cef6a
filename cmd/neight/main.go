// Package main provides the entry point for the Neight CLI.
package main

import (
	"fmt"
	"os"

	"github.com/neight-app/neight/cmd/neight/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
