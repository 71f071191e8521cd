// Package gridgraph defines the cell, coordinate and grid types shared by
// the search engine and the presentation layer.
package gridgraph

import (
	"fmt"
	"math"
)

// Infinity is the sentinel distance of a cell the search has not reached.
const Infinity = math.MaxInt

// noIndex marks an absent row-major index (no start, no end, no back-link).
const noIndex = -1

// Coord addresses a cell by row and column.
type Coord struct {
	Row, Col int
}

// NoCoord is the zero-information coordinate returned when a cell has no
// back-link or a role is unset.
var NoCoord = Coord{Row: -1, Col: -1}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Cell is a read-only snapshot of one grid cell: its coordinates, its role
// flags, and the run state the search has written to it.
type Cell struct {
	Row, Col int // Position within the grid

	Distance int  // Cost from start; Infinity until reached
	Visited  bool // Finalized by the search

	IsStart bool
	IsEnd   bool
	IsWall  bool

	Previous    Coord // Cell this one was first reached from; NoCoord if none
	HasPrevious bool

	IsShortestPath bool // Marked during path playback
}

// Coord returns the cell's coordinates.
func (c Cell) Coord() Coord {
	return Coord{Row: c.Row, Col: c.Col}
}

// Grid is a rectangular maze of rows×cols cells stored row-major.
//
// Topology (walls, start, end) is changed only through the role edits.
// Run state (distance, visited, previous, onPath) is changed only by the
// search and by path playback, and is wiped by Reset.
type Grid struct {
	rows, cols int

	// topology
	walls []bool
	start int
	end   int

	// run state
	dist    []int
	visited []bool
	prev    []int
	onPath  []bool

	neighborOffsets [4][2]int
}
