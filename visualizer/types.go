package visualizer

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/internal/log"
)

// Sentinel errors returned by Session methods.
var (
	// ErrBusy indicates that a run or its path animation is in progress.
	ErrBusy = errors.New("visualizer: visualization in progress")

	// ErrMissingEndpoints indicates that Visualize was called without both a start and an end.
	ErrMissingEndpoints = errors.New("visualizer: start and end must both be set")

	// ErrBadMode indicates an unknown edit mode.
	ErrBadMode = errors.New("visualizer: unknown mode")
)

// Mode selects what a click does.
type Mode int

const (
	ModeStart Mode = iota // place the start cell
	ModeEnd               // place the end cell
	ModeWall              // toggle walls
)

// String returns the mode name used by the hosts.
func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModeEnd:
		return "end"
	case ModeWall:
		return "wall"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "start", "end" or "wall" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "start":
		return ModeStart, nil
	case "end":
		return ModeEnd, nil
	case "wall":
		return ModeWall, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadMode, s)
	}
}

// Snapshot is a consistent read-only view of a session.
// Grid is a private copy; mutating it does not affect the session.
type Snapshot struct {
	SessionID uuid.UUID
	Grid      *gridgraph.Grid
	Mode      Mode
	Busy      bool
}

// RunReport summarises one Visualize call.
type RunReport struct {
	RunID     uuid.UUID
	SessionID uuid.UUID
	Start     gridgraph.Coord
	End       gridgraph.Coord
	Waves     int               // Waves reported by the engine
	Visited   int               // Cells in the visitation order
	Reached   bool              // The end cell was visited
	Path      []gridgraph.Coord // Start → end; empty when unreachable
	Cancelled bool              // The context ended the run early
	Elapsed   time.Duration
}

// PathLength returns the number of moves along the reported path.
func (r RunReport) PathLength() int {
	return dijkstra.PathLength(r.Path)
}

// Observer receives session events. Calls are synchronous and must not
// block or call back into mutating Session methods.
type Observer interface {
	GridChanged(s Snapshot)
	WaveVisited(runID uuid.UUID, w dijkstra.Wave)
	PathCell(runID uuid.UUID, c gridgraph.Cell)
	RunFinished(r RunReport)
}

// NopObserver implements Observer with no-ops. Embed it to override a
// subset of events.
type NopObserver struct{}

func (NopObserver) GridChanged(Snapshot) {}
func (NopObserver) WaveVisited(uuid.UUID, dijkstra.Wave) {}
func (NopObserver) PathCell(uuid.UUID, gridgraph.Cell) {}
func (NopObserver) RunFinished(RunReport) {}

// Options configures a Session.
//
// WaveInterval   – pause between engine waves. Default dijkstra.DefaultWaveInterval.
// PathStepDelay  – pause between revealed path cells. Default 5ms.
// WallDensity    – wall probability for RandomMaze. Default gridgraph.DefaultWallDensity.
// GuaranteePath  – RandomMaze carves a corridor when start and end end up disconnected.
// Sizing         – viewport sizing policy for ResizeViewport.
// Rand           – randomness for RandomMaze. Default seeded from the clock.
// Logger         – session logger. Default discards.
type Options struct {
	WaveInterval  time.Duration
	PathStepDelay time.Duration
	WallDensity   float64
	GuaranteePath bool
	Sizing        gridgraph.Sizing
	Rand          *rand.Rand
	Logger        *log.Logger
}

// DefaultPathStepDelay is the pause between revealed shortest-path cells.
const DefaultPathStepDelay = 5 * time.Millisecond

// Option represents a functional option for configuring a Session.
type Option func(*Options)

// DefaultOptions returns 50ms between waves, 5ms per path cell and 30% walls.
func DefaultOptions() Options {
	return Options{
		WaveInterval:  dijkstra.DefaultWaveInterval,
		PathStepDelay: DefaultPathStepDelay,
		WallDensity:   gridgraph.DefaultWallDensity,
		Sizing:        gridgraph.DefaultSizing(),
	}
}

// WithWaveInterval sets the pause between waves. Panics if d < 0.
func WithWaveInterval(d time.Duration) Option {
	if d < 0 {
		panic("visualizer: WaveInterval must be non-negative")
	}
	return func(o *Options) { o.WaveInterval = d }
}

// WithPathStepDelay sets the pause between path cells. Panics if d < 0.
func WithPathStepDelay(d time.Duration) Option {
	if d < 0 {
		panic("visualizer: PathStepDelay must be non-negative")
	}
	return func(o *Options) { o.PathStepDelay = d }
}

// WithoutAnimation disables both pauses; runs complete as fast as possible.
func WithoutAnimation() Option {
	return func(o *Options) {
		o.WaveInterval = 0
		o.PathStepDelay = 0
	}
}

// WithWallDensity sets the RandomMaze density. Panics outside [0, 1].
func WithWallDensity(p float64) Option {
	if p < 0 || p > 1 {
		panic("visualizer: WallDensity must be in [0, 1]")
	}
	return func(o *Options) { o.WallDensity = p }
}

// WithGuaranteedPath makes RandomMaze keep start and end connected.
func WithGuaranteedPath() Option {
	return func(o *Options) { o.GuaranteePath = true }
}

// WithSizing sets the viewport sizing policy.
func WithSizing(s gridgraph.Sizing) Option {
	return func(o *Options) { o.Sizing = s }
}

// WithRand sets the random source used by RandomMaze.
func WithRand(r *rand.Rand) Option {
	return func(o *Options) { o.Rand = r }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}
