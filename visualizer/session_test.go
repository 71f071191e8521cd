package visualizer_test

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/visualizer"
)

func c(r, col int) gridgraph.Coord { return gridgraph.Coord{Row: r, Col: col} }

// recorder collects observer events.
type recorder struct {
	mu       sync.Mutex
	grids    int
	waves    []dijkstra.Wave
	path     []gridgraph.Cell
	finished []visualizer.RunReport
}

func (r *recorder) GridChanged(visualizer.Snapshot) {
	r.mu.Lock()
	r.grids++
	r.mu.Unlock()
}

func (r *recorder) WaveVisited(_ uuid.UUID, w dijkstra.Wave) {
	r.mu.Lock()
	r.waves = append(r.waves, w)
	r.mu.Unlock()
}

func (r *recorder) PathCell(_ uuid.UUID, cell gridgraph.Cell) {
	r.mu.Lock()
	r.path = append(r.path, cell)
	r.mu.Unlock()
}

func (r *recorder) RunFinished(rep visualizer.RunReport) {
	r.mu.Lock()
	r.finished = append(r.finished, rep)
	r.mu.Unlock()
}

func newSession(t *testing.T, rows, cols int, opts ...visualizer.Option) *visualizer.Session {
	t.Helper()
	s, err := visualizer.New(rows, cols, append([]visualizer.Option{visualizer.WithoutAnimation()}, opts...)...)
	require.NoError(t, err)
	return s
}

// place sets start and end through the click rules.
func place(t *testing.T, s *visualizer.Session, start, end gridgraph.Coord) {
	t.Helper()
	require.NoError(t, s.SetMode(visualizer.ModeStart))
	require.NoError(t, s.Click(start))
	require.Equal(t, visualizer.ModeEnd, s.Mode())
	require.NoError(t, s.Click(end))
}

func TestNewSession(t *testing.T) {
	s := newSession(t, 4, 6)
	snap := s.Snapshot()

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.Equal(t, s.ID(), snap.SessionID)
	assert.Equal(t, visualizer.ModeStart, snap.Mode)
	assert.False(t, snap.Busy)
	assert.Equal(t, 4, snap.Grid.Rows())
	assert.Equal(t, 6, snap.Grid.Cols())
	_, ok := snap.Grid.Start()
	assert.False(t, ok)

	_, err := visualizer.New(0, 3)
	assert.ErrorIs(t, err, gridgraph.ErrEmptyGrid)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newSession(t, 2, 2)
	snap := s.Snapshot()
	require.NoError(t, snap.Grid.SetWall(c(0, 0), true))
	assert.False(t, s.Snapshot().Grid.IsWall(c(0, 0)))
}

func TestClickStartThenEnd(t *testing.T) {
	s := newSession(t, 3, 3)

	require.NoError(t, s.Click(c(0, 0)))
	assert.Equal(t, visualizer.ModeEnd, s.Mode())
	require.NoError(t, s.Click(c(2, 2)))
	assert.Equal(t, visualizer.ModeEnd, s.Mode())
	require.NoError(t, s.Click(c(1, 2)))

	g := s.Snapshot().Grid
	st, _ := g.Start()
	en, _ := g.End()
	assert.Equal(t, c(0, 0), st)
	assert.Equal(t, c(1, 2), en, "end mode moves the end")
}

func TestClickWallRules(t *testing.T) {
	s := newSession(t, 3, 3)
	place(t, s, c(0, 0), c(2, 2))
	require.NoError(t, s.SetMode(visualizer.ModeWall))

	require.NoError(t, s.Click(c(1, 1)))
	assert.True(t, s.Snapshot().Grid.IsWall(c(1, 1)))

	// start and end are never walled
	require.NoError(t, s.Click(c(0, 0)))
	require.NoError(t, s.Click(c(2, 2)))
	assert.False(t, s.Snapshot().Grid.IsWall(c(0, 0)))
	assert.False(t, s.Snapshot().Grid.IsWall(c(2, 2)))

	// in end mode a wall click does nothing
	require.NoError(t, s.SetMode(visualizer.ModeEnd))
	require.NoError(t, s.Click(c(1, 1)))
	g := s.Snapshot().Grid
	assert.True(t, g.IsWall(c(1, 1)))
	en, _ := g.End()
	assert.Equal(t, c(2, 2), en)

	// wall mode removes it
	require.NoError(t, s.SetMode(visualizer.ModeWall))
	require.NoError(t, s.Click(c(1, 1)))
	assert.False(t, s.Snapshot().Grid.IsWall(c(1, 1)))
}

func TestClickOutOfBounds(t *testing.T) {
	s := newSession(t, 2, 2)
	assert.ErrorIs(t, s.Click(c(5, 0)), gridgraph.ErrOutOfBounds)
}

func TestSetModeRules(t *testing.T) {
	s := newSession(t, 3, 3)

	// end without a start falls back to start
	require.NoError(t, s.SetMode(visualizer.ModeEnd))
	assert.Equal(t, visualizer.ModeStart, s.Mode())

	place(t, s, c(0, 0), c(2, 2))
	require.NoError(t, s.SetMode(visualizer.ModeEnd))
	assert.Equal(t, visualizer.ModeEnd, s.Mode())

	// start clears both roles
	require.NoError(t, s.SetMode(visualizer.ModeStart))
	g := s.Snapshot().Grid
	_, hasStart := g.Start()
	_, hasEnd := g.End()
	assert.False(t, hasStart)
	assert.False(t, hasEnd)

	assert.ErrorIs(t, s.SetMode(visualizer.Mode(9)), visualizer.ErrBadMode)
}

func TestParseMode(t *testing.T) {
	m, err := visualizer.ParseMode(" Wall ")
	require.NoError(t, err)
	assert.Equal(t, visualizer.ModeWall, m)
	assert.Equal(t, "end", visualizer.ModeEnd.String())

	_, err = visualizer.ParseMode("diagonal")
	assert.ErrorIs(t, err, visualizer.ErrBadMode)
}

func TestDragPaintsEachCellOnce(t *testing.T) {
	s := newSession(t, 1, 5)
	require.NoError(t, s.SetMode(visualizer.ModeWall))

	// Enter without Press is ignored
	require.NoError(t, s.Enter(c(0, 0)))
	assert.Empty(t, s.Snapshot().Grid.Walls())

	require.NoError(t, s.Press(c(0, 1)))
	require.NoError(t, s.Enter(c(0, 2)))
	require.NoError(t, s.Enter(c(0, 1))) // back over a painted cell
	require.NoError(t, s.Enter(c(0, 3)))
	s.Release()
	require.NoError(t, s.Enter(c(0, 4)))

	assert.Equal(t, []gridgraph.Coord{c(0, 1), c(0, 2), c(0, 3)}, s.Snapshot().Grid.Walls())
}

func TestClearAllKeepsRoles(t *testing.T) {
	s := newSession(t, 3, 3)
	place(t, s, c(0, 0), c(2, 2))
	require.NoError(t, s.SetMode(visualizer.ModeWall))
	require.NoError(t, s.Click(c(1, 1)))

	require.NoError(t, s.ClearAll())
	g := s.Snapshot().Grid
	assert.Empty(t, g.Walls())
	_, hasStart := g.Start()
	_, hasEnd := g.End()
	assert.True(t, hasStart)
	assert.True(t, hasEnd)
}

func TestRandomMaze(t *testing.T) {
	s := newSession(t, 4, 4, visualizer.WithWallDensity(1), visualizer.WithRand(rand.New(rand.NewSource(1))))
	place(t, s, c(0, 0), c(3, 3))

	walls, err := s.RandomMaze()
	require.NoError(t, err)
	assert.Equal(t, 14, walls)
	assert.False(t, s.Snapshot().Grid.IsWall(c(0, 0)))

	g := newSession(t, 4, 4, visualizer.WithWallDensity(1), visualizer.WithGuaranteedPath())
	place(t, g, c(0, 0), c(3, 3))
	_, err = g.RandomMaze()
	require.NoError(t, err)
	assert.True(t, g.Snapshot().Grid.Connected(c(0, 0), c(3, 3)))

	assert.Panics(t, func() { visualizer.WithWallDensity(1.1) })
}

func TestResize(t *testing.T) {
	s := newSession(t, 3, 3)
	place(t, s, c(0, 0), c(2, 2))
	require.NoError(t, s.SetMode(visualizer.ModeWall))

	require.NoError(t, s.Resize(5, 7))
	g := s.Snapshot().Grid
	assert.Equal(t, 5, g.Rows())
	assert.Equal(t, 7, g.Cols())
	_, hasStart := g.Start()
	assert.False(t, hasStart)
	assert.Equal(t, visualizer.ModeWall, s.Mode())

	require.NoError(t, s.ResizeViewport(1280, 720))
	g = s.Snapshot().Grid
	assert.Equal(t, 33, g.Rows())
	assert.Equal(t, 64, g.Cols())

	assert.ErrorIs(t, s.Resize(0, 1), gridgraph.ErrEmptyGrid)
}

func TestReplace(t *testing.T) {
	s := newSession(t, 2, 2)
	g, err := gridgraph.Parse([]string{"S.#", "..E"})
	require.NoError(t, err)

	require.NoError(t, s.Replace(g))
	snap := s.Snapshot()
	assert.Equal(t, []string{"S.#", "..E"}, snap.Grid.TopologyLines())
	assert.Equal(t, visualizer.ModeWall, snap.Mode)

	// the session owns a copy
	require.NoError(t, g.SetWall(c(1, 0), true))
	assert.False(t, s.Snapshot().Grid.IsWall(c(1, 0)))
}

func TestObserversAndUnsubscribe(t *testing.T) {
	s := newSession(t, 2, 2)
	rec := &recorder{}
	unsubscribe := s.Subscribe(rec)

	require.NoError(t, s.Click(c(0, 0)))
	require.NoError(t, s.ClearAll())
	unsubscribe()
	unsubscribe()
	require.NoError(t, s.Click(c(1, 1)))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 2, rec.grids)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { visualizer.WithWaveInterval(-time.Second) })
	assert.Panics(t, func() { visualizer.WithPathStepDelay(-time.Second) })
	assert.NotPanics(t, func() { visualizer.WithPathStepDelay(0) })
}
