// Package dijkstra defines the wave type, sentinel errors and functional
// options for the grid search.
package dijkstra

import (
	"errors"
	"time"

	"github.com/katalvlaran/gridpath/gridgraph"
)

// Sentinel errors returned by the search.
var (
	// ErrNilGrid indicates that a nil *gridgraph.Grid was passed.
	ErrNilGrid = errors.New("dijkstra: grid is nil")

	// ErrOutOfBounds indicates that the start or end coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("dijkstra: start or end outside the grid")

	// ErrWallEndpoint indicates that the start or end cell is a wall.
	ErrWallEndpoint = errors.New("dijkstra: start or end is a wall")

	// ErrBadInterval indicates that WaveInterval was set to a negative duration.
	ErrBadInterval = errors.New("dijkstra: WaveInterval must be non-negative")
)

// DefaultWaveInterval is the pause hosts use between waves when animating.
// Run itself defaults to no pause.
const DefaultWaveInterval = 50 * time.Millisecond

// Wave is the set of cells finalized at one distance from the start.
type Wave struct {
	Index    int              // 0 for the wave holding only the start
	Distance int              // Distance shared by every cell in the wave
	Cells    []gridgraph.Cell // Snapshots taken as each cell was finalized, in visiting order
	Reached  bool             // The last cell of Cells is the end cell
	Last     bool             // No wave follows: the end was reached or the frontier is empty
}

// Options configures Run.
//
// WaveInterval – pause after each wave before the next is computed.
//
//	Must be ≥ 0. Default is 0 (no pause).
//
// OnWave – observer invoked with each full Wave after onBatch. Default no-op.
type Options struct {
	WaveInterval time.Duration
	OnWave       func(Wave)
}

// Option represents a functional option for configuring Run.
type Option func(*Options)

// WithWaveInterval sets the pause between waves.
// A negative duration panics with ErrBadInterval.
func WithWaveInterval(d time.Duration) Option {
	if d < 0 {
		panic(ErrBadInterval.Error())
	}
	return func(o *Options) {
		o.WaveInterval = d
	}
}

// WithOnWave registers an observer that receives wave metadata along with
// the cells. A nil fn is ignored.
func WithOnWave(fn func(Wave)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnWave = fn
		}
	}
}

// DefaultOptions returns Options with no pause and a no-op OnWave.
func DefaultOptions() Options {
	return Options{
		WaveInterval: 0,
		OnWave:       func(Wave) {},
	}
}
