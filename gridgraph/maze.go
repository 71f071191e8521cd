package gridgraph

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultWallDensity is the probability that RandomWalls turns a cell into a wall.
const DefaultWallDensity = 0.3

// MazeOptions holds tunable parameters for RandomWalls.
type MazeOptions struct {
	// Density is the per-cell wall probability in [0, 1].
	Density float64
	// Rand is the random source. Nil means a time-seeded source.
	Rand *rand.Rand
	// GuaranteePath carves a corridor between start and end when both are
	// set and the scattered walls disconnect them.
	GuaranteePath bool
}

// MazeOption configures RandomWalls.
type MazeOption func(*MazeOptions)

// DefaultMazeOptions returns Density=DefaultWallDensity, a nil Rand and no
// path guarantee, matching a plain random scatter.
func DefaultMazeOptions() MazeOptions {
	return MazeOptions{Density: DefaultWallDensity}
}

// WithDensity sets the wall probability. Values outside [0, 1] panic.
func WithDensity(p float64) MazeOption {
	if p < 0 || p > 1 {
		panic(fmt.Sprintf("gridgraph: wall density %v outside [0,1]", p))
	}
	return func(o *MazeOptions) { o.Density = p }
}

// WithRand uses r as the random source, for reproducible mazes.
func WithRand(r *rand.Rand) MazeOption {
	return func(o *MazeOptions) { o.Rand = r }
}

// WithGuaranteedPath carves a corridor between start and end if needed.
func WithGuaranteedPath() MazeOption {
	return func(o *MazeOptions) { o.GuaranteePath = true }
}

// RandomWalls clears the grid (as ClearAll) and then marks every cell other
// than the start and end as a wall with probability Density, scanning in
// row-major order. It returns the final number of walls.
// Complexity: O(W×H), plus O(W×H) for the optional corridor.
func (g *Grid) RandomWalls(opts ...MazeOption) int {
	cfg := DefaultMazeOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	r := cfg.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.ClearAll()
	for i := range g.walls {
		if i == g.start || i == g.end {
			continue
		}
		g.walls[i] = r.Float64() < cfg.Density
	}

	if cfg.GuaranteePath && g.start != noIndex && g.end != noIndex {
		s, e := g.Coordinate(g.start), g.Coordinate(g.end)
		if !g.Connected(s, e) {
			// endpoints are in bounds, so this cannot fail
			_, _, _ = g.CarveCorridor(s, e)
		}
	}

	count := 0
	for _, w := range g.walls {
		if w {
			count++
		}
	}
	return count
}
