package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/scrollview/cmd/scrolldemo/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = commands.Run(args)
	case "snapshot":
		err = commands.Snapshot(args)
	case "preload":
		err = commands.Preload(args)
	case "config":
		err = commands.Config(args)
	case "version", "-v", "--version":
		fmt.Printf("scrolldemo version %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scrolldemo - scroll view playground

Usage: scrolldemo <command> [options]

Commands:
  run        Scroll a tile grid in the terminal (mouse drag, wheel, keys)
  snapshot   Replay a fling headlessly and save the result as PNG
  preload    Load every resource in a manifest and report the results
  config     Print the effective configuration as TOML
  version    Print version information
  help       Show this help message

Keys (run):
  g / G      scroll to top / bottom       H / L   scroll to left / right
  j / k      nudge down / up              h / l   nudge left / right
  0-9        scroll to 0%..100%           space   stop scrolling
  d          cycle direction              i       toggle inertia
  q, Esc     quit

Examples:
  scrolldemo run --direction both --rows 80
  scrolldemo snapshot --snapshot out.png --frames 45
  scrolldemo preload --assets ./assets --manifest manifest.toml
  SCROLLDEMO_SCROLL_INERTIA_ENABLED=false scrolldemo run

Run 'scrolldemo <command> --help' for the full flag list.`)
}
