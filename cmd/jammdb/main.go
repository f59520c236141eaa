// Package main is the entry point for the jammdb CLI.
//
// Usage:
//
//	jammdb [flags] <command> [subcommand] [args]
//
// Commands:
//
//	get       - Read the value stored under a key
//	set       - Store a value under a key
//	delete    - Remove a key
//	list      - List entries, optionally under a key prefix
//	apply     - Write a batch of entries from a YAML or JSON file
//	snapshot  - Save, restore and list database snapshots
//	version   - Show version information
package main

import (
	"fmt"
	"os"

	"github.com/tokahuke/jammdb/cmd/jammdb/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
