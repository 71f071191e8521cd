// Command gridpath draws mazes on a grid and animates Dijkstra's search
// through them, in the terminal or behind an HTTP API. It can also solve
// and render text grids offline.
//
// Usage:
//
//	gridpath tui [--rows N --cols N] [--fit] [--layout NAME]
//	gridpath serve [--addr :8080]
//	gridpath solve [FILE]
//	gridpath render [FILE] -o grid.png [--video run.avi] [--chart waves.png]
//
// Settings are read from the environment and an optional .env file; see
// package config for the variable names.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
