package visualizer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
)

// Visualize runs the search from the session's start to its end and then
// reveals the shortest path, blocking until both are done.
//
// The session is busy for the whole call. Waves are mirrored onto the
// session grid as the engine reports them, so Snapshot shows the search in
// progress. Path cells other than the start and end are marked one per
// PathStepDelay. If ctx ends early the partial state is kept, the report
// has Cancelled set, and ctx.Err() is returned.
//
// Returns ErrBusy when another run is in progress and ErrMissingEndpoints
// when the start or end is unset.
func (s *Session) Visualize(ctx context.Context) (RunReport, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return RunReport{}, ErrBusy
	}
	start, okStart := s.grid.Start()
	end, okEnd := s.grid.End()
	if !okStart || !okEnd {
		s.mu.Unlock()
		return RunReport{}, ErrMissingEndpoints
	}
	s.grid.Reset()
	s.busy = true
	s.pressed = false
	work := s.grid.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.each(func(o Observer) { o.GridChanged(snap) })

	report := RunReport{
		RunID:     uuid.New(),
		SessionID: s.id,
		Start:     start,
		End:       end,
	}
	began := time.Now()
	s.log.Infof("run %s: %s → %s on %dx%d", report.RunID, start, end, work.Rows(), work.Cols())

	err := s.run(ctx, work, &report)
	report.Elapsed = time.Since(began)
	if err != nil {
		report.Cancelled = errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		s.log.Warnf("run %s stopped after %d visited cells: %v", report.RunID, report.Visited, err)
	} else {
		s.log.Infof("run %s: visited %d cells in %d waves, reached=%t, path length %d (%s)",
			report.RunID, report.Visited, report.Waves, report.Reached, report.PathLength(), report.Elapsed)
	}

	s.mu.Lock()
	s.busy = false
	snap = s.snapshotLocked()
	s.mu.Unlock()
	s.each(func(o Observer) { o.GridChanged(snap) })
	s.each(func(o Observer) { o.RunFinished(report) })

	return report, err
}

// run drives the engine on work and animates the resulting path.
func (s *Session) run(ctx context.Context, work *gridgraph.Grid, report *RunReport) error {
	order, err := dijkstra.Run(ctx, work, report.Start, report.End, s.applyBatch,
		dijkstra.WithWaveInterval(s.opts.WaveInterval),
		dijkstra.WithOnWave(func(w dijkstra.Wave) {
			report.Waves++
			s.each(func(o Observer) { o.WaveVisited(report.RunID, w) })
		}),
	)
	report.Visited = len(order)
	if err != nil {
		return err
	}

	report.Reached = work.Visited(report.End)
	report.Path = dijkstra.ShortestPath(work, report.End)

	return s.animatePath(ctx, report.RunID, report.Path)
}

// applyBatch mirrors a wave computed on the private grid onto the session grid.
func (s *Session) applyBatch(cells []gridgraph.Cell) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cell := range cells {
		from := gridgraph.NoCoord
		if cell.HasPrevious {
			from = cell.Previous
		}
		c := cell.Coord()
		s.grid.SetDistance(c, cell.Distance, from)
		s.grid.MarkVisited(c)
	}
}

// animatePath marks path cells one at a time. Every cell, the endpoints
// included, takes one step; only interior cells are marked and reported.
func (s *Session) animatePath(ctx context.Context, runID uuid.UUID, path []gridgraph.Coord) error {
	if len(path) == 0 {
		return nil
	}
	first, last := path[0], path[len(path)-1]
	for i, c := range path {
		if i > 0 {
			if err := sleep(ctx, s.opts.PathStepDelay); err != nil {
				return err
			}
		}
		if c == first || c == last {
			continue
		}
		s.mu.Lock()
		s.grid.MarkShortestPath(c)
		cell, _ := s.grid.Cell(c)
		s.mu.Unlock()
		s.each(func(o Observer) { o.PathCell(runID, cell) })
	}
	return nil
}

// sleep waits for d or until ctx ends, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
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
