package gridgraph

import (
	"fmt"
	"strings"
)

// Cell symbols of the text form.
const (
	SymbolOpen     = '.'
	SymbolWall     = '#'
	SymbolStart    = 'S'
	SymbolEnd      = 'E'
	SymbolBoth     = 'B' // start and end on the same cell
	SymbolVisited  = 'o'
	SymbolPathCell = '*'
)

// Parse builds a grid from its text form, one string per row.
// Run-state symbols ('o', '*') are read as open cells.
// Returns ErrEmptyGrid, ErrNonRectangular, ErrBadSymbol or ErrDuplicateRole.
func Parse(lines []string) (*Grid, error) {
	if len(lines) == 0 || len(lines[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(lines[0])
	for r, line := range lines {
		if len(line) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(line), w)
		}
	}
	g, err := NewGrid(len(lines), w)
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		for c := 0; c < len(line); c++ {
			i := r*w + c
			switch line[c] {
			case SymbolOpen, SymbolVisited, SymbolPathCell:
			case SymbolWall:
				g.walls[i] = true
			case SymbolStart:
				if g.start != noIndex {
					return nil, fmt.Errorf("%w: second %q at (%d,%d)", ErrDuplicateRole, SymbolStart, r, c)
				}
				g.start = i
			case SymbolEnd:
				if g.end != noIndex {
					return nil, fmt.Errorf("%w: second %q at (%d,%d)", ErrDuplicateRole, SymbolEnd, r, c)
				}
				g.end = i
			case SymbolBoth:
				if g.start != noIndex || g.end != noIndex {
					return nil, fmt.Errorf("%w: %q at (%d,%d) repeats a role", ErrDuplicateRole, SymbolBoth, r, c)
				}
				g.start, g.end = i, i
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrBadSymbol, line[c], r, c)
			}
		}
	}

	return g, nil
}

// Lines renders the grid as one string per row. Roles win over run state:
// B when start and end share a cell, S, E, #, then * for shortest path,
// o for visited, . otherwise.
func (g *Grid) Lines() []string {
	out := make([]string, g.rows)
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		b.Reset()
		for c := 0; c < g.cols; c++ {
			b.WriteByte(g.symbol(r*g.cols + c))
		}
		out[r] = b.String()
	}
	return out
}

// String renders the grid as newline-separated rows.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// TopologyLines renders only walls, start and end, dropping run state.
func (g *Grid) TopologyLines() []string {
	out := make([]string, g.rows)
	row := make([]byte, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			i := r*g.cols + c
			if sym, ok := g.roleSymbol(i); ok {
				row[c] = sym
				continue
			}
			row[c] = SymbolOpen
		}
		out[r] = string(row)
	}
	return out
}

// roleSymbol returns the topology symbol of cell i, if it has one.
func (g *Grid) roleSymbol(i int) (byte, bool) {
	switch {
	case i == g.start && i == g.end:
		return SymbolBoth, true
	case i == g.start:
		return SymbolStart, true
	case i == g.end:
		return SymbolEnd, true
	case g.walls[i]:
		return SymbolWall, true
	}
	return 0, false
}

func (g *Grid) symbol(i int) byte {
	if sym, ok := g.roleSymbol(i); ok {
		return sym
	}
	switch {
	case g.onPath[i]:
		return SymbolPathCell
	case g.visited[i]:
		return SymbolVisited
	default:
		return SymbolOpen
	}
}
