package visualizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/visualizer"
)

func TestVisualizeOpenGrid(t *testing.T) {
	s := newSession(t, 5, 5)
	place(t, s, c(0, 0), c(0, 4))
	rec := &recorder{}
	s.Subscribe(rec)

	report, err := s.Visualize(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Reached)
	assert.False(t, report.Cancelled)
	assert.Equal(t, 11, report.Visited)
	assert.Equal(t, 5, report.Waves)
	assert.Equal(t, 4, report.PathLength())
	assert.Equal(t, []gridgraph.Coord{c(0, 0), c(0, 1), c(0, 2), c(0, 3), c(0, 4)}, report.Path)
	assert.Equal(t, s.ID(), report.SessionID)

	snap := s.Snapshot()
	assert.False(t, snap.Busy)
	assert.Equal(t, []string{
		"S***E",
		"ooo..",
		"oo...",
		"o....",
		".....",
	}, snap.Grid.Lines())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.waves, 5)
	require.Len(t, rec.path, 3)
	assert.Equal(t, c(0, 1), rec.path[0].Coord())
	assert.True(t, rec.path[0].IsShortestPath)
	require.Len(t, rec.finished, 1)
	assert.Equal(t, report.RunID, rec.finished[0].RunID)
	assert.GreaterOrEqual(t, rec.grids, 2, "busy on and busy off")
}

func TestVisualizeUnreachable(t *testing.T) {
	s := newSession(t, 3, 3)
	g, err := gridgraph.Parse([]string{
		"S#.",
		"##.",
		"..E",
	})
	require.NoError(t, err)
	require.NoError(t, s.Replace(g))

	report, err := s.Visualize(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Reached)
	assert.Empty(t, report.Path)
	assert.Equal(t, 1, report.Visited)
	assert.False(t, s.Busy())
}

func TestVisualizeMissingEndpoints(t *testing.T) {
	s := newSession(t, 3, 3)
	_, err := s.Visualize(context.Background())
	assert.ErrorIs(t, err, visualizer.ErrMissingEndpoints)

	require.NoError(t, s.Click(c(0, 0)))
	_, err = s.Visualize(context.Background())
	assert.ErrorIs(t, err, visualizer.ErrMissingEndpoints)
}

func TestVisualizeStartEqualsEnd(t *testing.T) {
	s := newSession(t, 2, 2)
	place(t, s, c(1, 1), c(1, 1))

	report, err := s.Visualize(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Reached)
	assert.Equal(t, []gridgraph.Coord{c(1, 1)}, report.Path)
	assert.Equal(t, 0, report.PathLength())
}

func TestEditsClearPreviousRun(t *testing.T) {
	s := newSession(t, 3, 3)
	place(t, s, c(0, 0), c(2, 2))
	_, err := s.Visualize(context.Background())
	require.NoError(t, err)
	require.True(t, s.Snapshot().Grid.Visited(c(0, 1)))

	require.NoError(t, s.SetMode(visualizer.ModeWall))
	g := s.Snapshot().Grid
	assert.False(t, g.Visited(c(0, 1)))
	assert.False(t, g.OnShortestPath(c(0, 1)))
	assert.Equal(t, gridgraph.Infinity, g.Distance(c(2, 2)))
}

func TestVisualizeBusyAndCancel(t *testing.T) {
	s, err := visualizer.New(10, 10,
		visualizer.WithWaveInterval(20*time.Millisecond),
		visualizer.WithPathStepDelay(0),
	)
	require.NoError(t, err)
	place(t, s, c(0, 0), c(9, 9))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	type result struct {
		report visualizer.RunReport
		err    error
	}
	done := make(chan result, 1)
	go func() {
		r, err := s.Visualize(ctx)
		done <- result{r, err}
	}()

	require.Eventually(t, s.Busy, time.Second, time.Millisecond)
	assert.ErrorIs(t, s.Click(c(5, 5)), visualizer.ErrBusy)
	assert.ErrorIs(t, s.SetMode(visualizer.ModeWall), visualizer.ErrBusy)
	assert.ErrorIs(t, s.ClearAll(), visualizer.ErrBusy)
	_, err = s.RandomMaze()
	assert.ErrorIs(t, err, visualizer.ErrBusy)
	_, err = s.Visualize(context.Background())
	assert.ErrorIs(t, err, visualizer.ErrBusy)
	assert.True(t, s.Snapshot().Busy)

	cancel()
	var res result
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Visualize did not return after cancel")
	}
	assert.ErrorIs(t, res.err, context.Canceled)
	assert.True(t, res.report.Cancelled)
	assert.False(t, res.report.Reached)
	assert.Less(t, res.report.Visited, 100)
	assert.False(t, s.Busy())

	// the partial search stays visible until the next edit
	assert.True(t, s.Snapshot().Grid.Visited(c(0, 0)))
}
