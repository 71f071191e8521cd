// Package dijkstra implements the wave-by-wave grid search.
//
// Notes on implementation choices:
//
//   - Edge cost is uniform, so the frontier is a pair of buckets (current
//     wave, next wave) instead of a heap. Every cell in the next bucket has
//     distance d+1.
//   - The next bucket is sorted by row-major index before it becomes the
//     current wave. This reproduces the stable tie-break of re-sorting the
//     whole unvisited set: cells first reached in the same wave were all
//     still at Infinity, in grid order, when that wave began.
//   - A neighbour is only updated when d+1 strictly improves its distance,
//     so the first cell to reach it keeps the back-link.
package dijkstra

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/katalvlaran/gridpath/gridgraph"
)

// Waves returns a single-use sequence of the search's distance waves from
// start towards end. Iteration mutates g's run state; stopping early leaves
// the grid as it was after the last yielded wave.
//
// If the inputs are invalid the sequence yields one zero Wave with the
// error and ends.
func Waves(g *gridgraph.Grid, start, end gridgraph.Coord) iter.Seq2[Wave, error] {
	return func(yield func(Wave, error) bool) {
		if err := validate(g, start, end); err != nil {
			yield(Wave{}, err)
			return
		}
		r := newRunner(g, start, end)
		for {
			w := r.step()
			if !yield(w, nil) || w.Last {
				return
			}
		}
	}
}

// Run computes shortest distances from start, stopping once end is visited,
// and returns the cells in the order they were visited.
//
// After each wave Run calls onBatch (if non-nil) with that wave's cells,
// then Options.OnWave, then pauses for Options.WaveInterval before
// computing the next wave. The pause is the only point where ctx is
// observed: on cancellation Run returns the order so far and ctx.Err().
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start and end must be inside g (ErrOutOfBounds).
//  3. start and end must not be walls (ErrWallEndpoint).
//
// The caller is expected to have called g.Reset since the previous run.
func Run(
	ctx context.Context,
	g *gridgraph.Grid,
	start, end gridgraph.Coord,
	onBatch func([]gridgraph.Cell),
	opts ...Option,
) ([]gridgraph.Cell, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var order []gridgraph.Cell
	for w, err := range Waves(g, start, end) {
		if err != nil {
			return nil, err
		}
		order = append(order, w.Cells...)
		if onBatch != nil {
			onBatch(w.Cells)
		}
		cfg.OnWave(w)
		if w.Last {
			break
		}
		if err := pause(ctx, cfg.WaveInterval); err != nil {
			return order, err
		}
	}

	return order, nil
}

// pause yields for d, returning early with ctx.Err() on cancellation.
// A cancellation already pending wins over the timer.
func pause(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil || d <= 0 {
		return err
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func validate(g *gridgraph.Grid, start, end gridgraph.Coord) error {
	if g == nil {
		return ErrNilGrid
	}
	if !g.InBounds(start) {
		return fmt.Errorf("%w: start %s in %dx%d grid", ErrOutOfBounds, start, g.Rows(), g.Cols())
	}
	if !g.InBounds(end) {
		return fmt.Errorf("%w: end %s in %dx%d grid", ErrOutOfBounds, end, g.Rows(), g.Cols())
	}
	if g.IsWall(start) {
		return fmt.Errorf("%w: start %s", ErrWallEndpoint, start)
	}
	if g.IsWall(end) {
		return fmt.Errorf("%w: end %s", ErrWallEndpoint, end)
	}
	return nil
}

// runner holds the mutable state of one search.
type runner struct {
	g     *gridgraph.Grid // Grid whose run state is written
	end   int             // Row-major index of the end cell
	wave  []int           // Current wave, ascending row-major indices
	next  []int           // Cells first reached from the current wave
	index int             // Index of the current wave (== its distance)
}

// newRunner seeds the search: distance(start) = 0 and the first wave holds
// only the start cell.
func newRunner(g *gridgraph.Grid, start, end gridgraph.Coord) *runner {
	g.SetDistance(start, 0, gridgraph.NoCoord)
	return &runner{
		g:    g,
		end:  g.Index(end),
		wave: []int{g.Index(start)},
	}
}

// step visits every cell of the current wave, relaxes their neighbours into
// the next bucket, and returns the finished wave.
func (r *runner) step() Wave {
	w := Wave{
		Index:    r.index,
		Distance: r.index,
		Cells:    make([]gridgraph.Cell, 0, len(r.wave)),
	}

	for _, i := range r.wave {
		cur := r.g.Coordinate(i)
		r.g.MarkVisited(cur)
		w.Cells = append(w.Cells, r.g.CellAt(i))

		if i == r.end {
			w.Reached = true
			w.Last = true
			return w
		}

		nd := r.g.Distance(cur) + 1
		for _, n := range r.g.Neighbors(cur) {
			if nd >= r.g.Distance(n) {
				continue
			}
			r.g.SetDistance(n, nd, cur)
			r.next = append(r.next, r.g.Index(n))
		}
	}

	slices.Sort(r.next)
	r.wave, r.next = r.next, r.wave[:0]
	r.index++
	w.Last = len(r.wave) == 0

	return w
}
