// Package gridgraph provides the grid a shortest-path search runs over.
//
// Cells are addressed by Coord{Row, Col} externally and by a row-major
// index (Row*Cols + Col) internally. Run-state accessors take coordinates
// the caller has already bounds-checked; role edits and Cell validate.
package gridgraph

import (
	"fmt"
	"math"
)

// NewGrid constructs a rows×cols grid with no walls, no start, no end and
// every cell's run state reset.
// Returns ErrEmptyGrid if rows or cols is not positive and ErrTooLarge if
// rows×cols overflows int.
// Algorithmic complexity: O(W×H) time and memory.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%w: %d×%d", ErrTooLarge, rows, cols)
	}
	n := rows * cols
	g := &Grid{
		rows:    rows,
		cols:    cols,
		walls:   make([]bool, n),
		start:   noIndex,
		end:     noIndex,
		dist:    make([]int, n),
		visited: make([]bool, n),
		prev:    make([]int, n),
		onPath:  make([]bool, n),
		// up, down, left, right; downstream tie-breaks depend on this order
		neighborOffsets: [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}},
	}
	g.Reset()

	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return g.rows * g.cols }

// InBounds reports whether c lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Index maps c to its row-major index: Row*Cols + Col.
// Complexity: O(1).
func (g *Grid) Index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// Coordinate converts a row-major index back to a Coord.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}

// Cell returns a snapshot of the cell at c, or ErrOutOfBounds.
func (g *Grid) Cell(c Coord) (Cell, error) {
	if !g.InBounds(c) {
		return Cell{}, ErrOutOfBounds
	}
	return g.CellAt(g.Index(c)), nil
}

// CellAt returns a snapshot of the cell at row-major index idx.
// idx must be in [0, Len()).
func (g *Grid) CellAt(idx int) Cell {
	c := g.Coordinate(idx)
	cell := Cell{
		Row:            c.Row,
		Col:            c.Col,
		Distance:       g.dist[idx],
		Visited:        g.visited[idx],
		IsStart:        idx == g.start,
		IsEnd:          idx == g.end,
		IsWall:         g.walls[idx],
		Previous:       NoCoord,
		IsShortestPath: g.onPath[idx],
	}
	if p := g.prev[idx]; p != noIndex {
		cell.Previous = g.Coordinate(p)
		cell.HasPrevious = true
	}

	return cell
}

// Cells returns a snapshot of every cell, indexed [row][col].
// Complexity: O(W×H).
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, g.rows)
	for r := 0; r < g.rows; r++ {
		out[r] = make([]Cell, g.cols)
		for c := 0; c < g.cols; c++ {
			out[r][c] = g.CellAt(r*g.cols + c)
		}
	}
	return out
}

// Start returns the start coordinate and whether one is set.
func (g *Grid) Start() (Coord, bool) {
	if g.start == noIndex {
		return NoCoord, false
	}
	return g.Coordinate(g.start), true
}

// End returns the end coordinate and whether one is set.
func (g *Grid) End() (Coord, bool) {
	if g.end == noIndex {
		return NoCoord, false
	}
	return g.Coordinate(g.end), true
}

// Walls returns the coordinates of every wall in row-major order.
func (g *Grid) Walls() []Coord {
	var out []Coord
	for i, w := range g.walls {
		if w {
			out = append(out, g.Coordinate(i))
		}
	}
	return out
}

// IsWall reports whether c is a wall. c must be in bounds.
func (g *Grid) IsWall(c Coord) bool {
	return g.walls[g.Index(c)]
}

// Neighbors returns the up-to-4 orthogonally adjacent cells of c that lie
// within the grid and are neither visited nor walls, in the order up, down,
// left, right.
// Complexity: O(1).
func (g *Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range g.neighborOffsets {
		n := Coord{Row: c.Row + d[0], Col: c.Col + d[1]}
		if !g.InBounds(n) {
			continue
		}
		i := g.Index(n)
		if g.visited[i] || g.walls[i] {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Distance returns the run-state distance of c (Infinity if unreached).
func (g *Grid) Distance(c Coord) int {
	return g.dist[g.Index(c)]
}

// Visited reports whether the search has finalized c.
func (g *Grid) Visited(c Coord) bool {
	return g.visited[g.Index(c)]
}

// Previous returns the back-link of c and whether one is set.
func (g *Grid) Previous(c Coord) (Coord, bool) {
	p := g.prev[g.Index(c)]
	if p == noIndex {
		return NoCoord, false
	}
	return g.Coordinate(p), true
}

// OnShortestPath reports whether c has been marked during path playback.
func (g *Grid) OnShortestPath(c Coord) bool {
	return g.onPath[g.Index(c)]
}

// SetDistance records distance d for c, reached from `from`.
// Pass NoCoord as from for the start cell.
func (g *Grid) SetDistance(c Coord, d int, from Coord) {
	i := g.Index(c)
	g.dist[i] = d
	if from == NoCoord {
		g.prev[i] = noIndex
		return
	}
	g.prev[i] = g.Index(from)
}

// MarkVisited finalizes c.
func (g *Grid) MarkVisited(c Coord) {
	g.visited[g.Index(c)] = true
}

// MarkShortestPath flags c as part of the highlighted path.
func (g *Grid) MarkShortestPath(c Coord) {
	g.onPath[g.Index(c)] = true
}

// Clone returns a deep copy of the grid, topology and run state included.
// Complexity: O(W×H).
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.walls = append([]bool(nil), g.walls...)
	cp.dist = append([]int(nil), g.dist...)
	cp.visited = append([]bool(nil), g.visited...)
	cp.prev = append([]int(nil), g.prev...)
	cp.onPath = append([]bool(nil), g.onPath...)

	return &cp
}
