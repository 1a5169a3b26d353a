// sgxtool is a CLI utility for checking scene files and replay records
// without opening a window.
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

	var err error
	switch command {
	case "validate", "check":
		err = cmdValidate(os.Stdout, args)
	case "info":
		err = cmdInfo(os.Stdout, args)
	case "replay":
		err = cmdReplay(os.Stdout, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`sgxtool - scene graph and replay utility

Usage:
  sgxtool <command> [options]

Commands:
  validate [-j N] <scene.xml>...   Parse scenes and report errors and warnings
  info <scene.xml>                 Show the contents of a scene
  replay <record.yaml>             Validate a replay record and print its moves

Examples:
  sgxtool validate scenes/*.xml
  sgxtool info scenes/checkers.xml
  sgxtool replay records/5f0c...yaml`)
}
