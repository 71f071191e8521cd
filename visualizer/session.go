package visualizer

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/internal/log"
)

// Session is one interactive grid with its edit mode and run state.
type Session struct {
	id   uuid.UUID
	opts Options
	log  *log.Logger

	mu      sync.Mutex
	grid    *gridgraph.Grid
	mode    Mode
	busy    bool
	pressed bool
	stroke  mapset.Set[gridgraph.Coord] // cells already painted by the current drag
	rng     *rand.Rand

	obsMu     sync.RWMutex
	observers map[int]Observer
	nextObs   int
}

// New creates a session with an empty rows×cols grid in ModeStart.
// It returns gridgraph.ErrEmptyGrid for non-positive dimensions.
func New(rows, cols int, opts ...Option) (*Session, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	g, err := gridgraph.NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		id:        uuid.New(),
		opts:      cfg,
		log:       logger.With("session"),
		grid:      g,
		mode:      ModeStart,
		stroke:    mapset.New[gridgraph.Coord](),
		rng:       rng,
		observers: make(map[int]Observer),
	}
	s.log.Debugf("session %s created with %dx%d grid", s.id, rows, cols)

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Options returns the options the session was created with.
func (s *Session) Options() Options { return s.opts }

// Subscribe registers o for events and returns a function that removes it.
func (s *Session) Subscribe(o Observer) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

// each calls fn for every observer without holding the session lock.
func (s *Session) each(fn func(Observer)) {
	s.obsMu.RLock()
	list := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		list = append(list, o)
	}
	s.obsMu.RUnlock()
	for _, o := range list {
		fn(o)
	}
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Grid:      s.grid.Clone(),
		Mode:      s.mode,
		Busy:      s.busy,
	}
}

// Mode returns the current edit mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Busy reports whether a run or its path animation is in progress.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// edit runs fn under the lock unless the session is busy, then notifies
// observers with the resulting snapshot. fn reports whether anything changed.
func (s *Session) edit(fn func() (bool, error)) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	changed, err := fn()
	var snap Snapshot
	if changed {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.each(func(o Observer) { o.GridChanged(snap) })
	}
	return err
}

// SetMode switches the edit mode. Any previous visualisation is cleared.
// ModeStart also removes the start and end; ModeEnd without a start
// falls back to ModeStart.
func (s *Session) SetMode(m Mode) error {
	if m < ModeStart || m > ModeWall {
		return fmt.Errorf("%w: %d", ErrBadMode, int(m))
	}
	return s.edit(func() (bool, error) {
		s.grid.Reset()
		s.mode = m
		switch m {
		case ModeStart:
			s.grid.ClearRoles()
		case ModeEnd:
			if _, ok := s.grid.Start(); !ok {
				s.mode = ModeStart
			}
		}
		return true, nil
	})
}

// Click applies the current mode to c:
//
//   - on a wall: ModeWall removes it, other modes do nothing;
//   - ModeStart: moves the start to c and switches to ModeEnd;
//   - ModeEnd: moves the end to c;
//   - ModeWall: toggles the wall unless c is the start or end.
//
// Any previous visualisation is cleared first.
func (s *Session) Click(c gridgraph.Coord) error {
	return s.edit(func() (bool, error) {
		return s.clickLocked(c)
	})
}

func (s *Session) clickLocked(c gridgraph.Coord) (bool, error) {
	if !s.grid.InBounds(c) {
		return false, fmt.Errorf("click %s: %w", c, gridgraph.ErrOutOfBounds)
	}
	s.grid.Reset()

	if s.grid.IsWall(c) {
		if s.mode == ModeWall {
			// cannot fail: c is in bounds and removing a wall never conflicts
			_ = s.grid.SetWall(c, false)
		}
		return true, nil
	}

	switch s.mode {
	case ModeStart:
		if err := s.grid.SetStart(c); err != nil {
			return true, err
		}
		s.mode = ModeEnd
	case ModeEnd:
		if err := s.grid.SetEnd(c); err != nil {
			return true, err
		}
	case ModeWall:
		if !s.isRole(c) {
			if _, err := s.grid.ToggleWall(c); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

func (s *Session) isRole(c gridgraph.Coord) bool {
	if st, ok := s.grid.Start(); ok && st == c {
		return true
	}
	if en, ok := s.grid.End(); ok && en == c {
		return true
	}
	return false
}

// Press starts a drag stroke at c and clicks it.
func (s *Session) Press(c gridgraph.Coord) error {
	return s.edit(func() (bool, error) {
		s.pressed = true
		s.stroke = mapset.New[gridgraph.Coord]()
		s.stroke.Put(c)
		return s.clickLocked(c)
	})
}

// Enter continues a drag stroke over c. It is a no-op when no stroke is
// active or the stroke already touched c, so leaving a cell and coming
// back within one stroke does not toggle it a second time.
func (s *Session) Enter(c gridgraph.Coord) error {
	return s.edit(func() (bool, error) {
		if !s.pressed || s.stroke.Has(c) {
			return false, nil
		}
		s.stroke.Put(c)
		return s.clickLocked(c)
	})
}

// Release ends the current drag stroke. It is accepted even while busy.
func (s *Session) Release() {
	s.mu.Lock()
	s.pressed = false
	s.stroke = mapset.New[gridgraph.Coord]()
	s.mu.Unlock()
}

// ClearAll removes every wall and the previous visualisation.
// Start and end are kept.
func (s *Session) ClearAll() error {
	return s.edit(func() (bool, error) {
		s.grid.ClearAll()
		return true, nil
	})
}

// RandomMaze clears the grid and scatters walls with the configured density.
// It returns the number of walls placed.
func (s *Session) RandomMaze() (int, error) {
	var walls int
	err := s.edit(func() (bool, error) {
		opts := []gridgraph.MazeOption{
			gridgraph.WithDensity(s.opts.WallDensity),
			gridgraph.WithRand(s.rng),
		}
		if s.opts.GuaranteePath {
			opts = append(opts, gridgraph.WithGuaranteedPath())
		}
		walls = s.grid.RandomWalls(opts...)
		return true, nil
	})
	if err == nil {
		s.log.Debugf("session %s: random maze with %d walls", s.id, walls)
	}
	return walls, err
}

// Resize replaces the grid with an empty rows×cols grid. Start and end are
// dropped; the edit mode is kept.
func (s *Session) Resize(rows, cols int) error {
	g, err := gridgraph.NewGrid(rows, cols)
	if err != nil {
		return err
	}
	return s.edit(func() (bool, error) {
		s.grid = g
		s.pressed = false
		s.stroke = mapset.New[gridgraph.Coord]()
		return true, nil
	})
}

// ResizeViewport resizes the grid to fit a width×height pixel viewport
// under the session's sizing policy.
func (s *Session) ResizeViewport(width, height int) error {
	rows, cols := gridgraph.DimensionsFor(width, height, s.opts.Sizing)
	return s.Resize(rows, cols)
}

// Replace swaps in a copy of g's topology (walls, start, end) with fresh
// run state, e.g. a loaded layout. The edit mode becomes ModeWall when g
// has a start, ModeStart otherwise.
func (s *Session) Replace(g *gridgraph.Grid) error {
	if g == nil {
		return fmt.Errorf("replace: %w", gridgraph.ErrEmptyGrid)
	}
	cp := g.Clone()
	cp.Reset()
	return s.edit(func() (bool, error) {
		s.grid = cp
		s.mode = ModeStart
		if _, ok := cp.Start(); ok {
			s.mode = ModeWall
		}
		return true, nil
	})
}
