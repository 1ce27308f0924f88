// Command artledger exercises the marketplace ledger from the command
// line: a canned trading scenario against an optional SQLite journal,
// and state reconstruction from an existing journal.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "demo":
		if err := demo(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "replay":
		if err := replay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`artledger - marketplace ledger tool

Usage:
  artledger <command> [options]

Commands:
  demo      Run a register/mint/list/buy scenario and print the result
  replay    Rebuild ledger state from a journal and print a summary
  help      Show this help

Options:
  demo   -journal <path>   journal the scenario to a SQLite file
  replay -journal <path>   journal file to replay (required)`)
}
