package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/internal/log"
	"github.com/katalvlaran/gridpath/visualizer"
)

// Hub owns the live sessions of a server and the runs started for them.
type Hub struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
	opts     []visualizer.Option
	sizing   gridgraph.Sizing
	log      *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	runs   sync.WaitGroup
}

type entry struct {
	session *visualizer.Session
	cancel  context.CancelFunc // set while a background run is active
	last    *visualizer.RunReport
}

// NewHub creates an empty hub. opts are applied to every new session.
func NewHub(logger *log.Logger, opts ...visualizer.Option) *Hub {
	if logger == nil {
		logger = log.Discard()
	}
	ctx, cancel := context.WithCancel(context.Background())
	all := append([]visualizer.Option{visualizer.WithLogger(logger)}, opts...)
	defaults := visualizer.DefaultOptions()
	for _, opt := range all {
		opt(&defaults)
	}
	return &Hub{
		sessions: make(map[uuid.UUID]*entry),
		opts:     all,
		sizing:   defaults.Sizing,
		log:      logger.With("hub"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Create starts a session. A zero rows/cols pair is derived from the
// width×height viewport instead.
func (h *Hub) Create(req CreateSessionRequest) (*visualizer.Session, error) {
	rows, cols, err := h.dimensions(req)
	if err != nil {
		return nil, err
	}
	s, err := visualizer.New(rows, cols, h.opts...)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.sessions[s.ID()] = &entry{session: s}
	n := len(h.sessions)
	h.mu.Unlock()
	h.log.Infof("session %s created (%dx%d), %d live", s.ID(), rows, cols, n)
	return s, nil
}

// dimensions resolves the grid size of req, converting a viewport when
// rows and cols are both zero, and rejects sizes above MaxDimension.
func (h *Hub) dimensions(req CreateSessionRequest) (int, int, error) {
	rows, cols := req.Rows, req.Cols
	if rows == 0 && cols == 0 && (req.Width > 0 || req.Height > 0) {
		rows, cols = gridgraph.DimensionsFor(req.Width, req.Height, h.sizing)
	}
	if err := checkDimensions(rows, cols); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

// checkDimensions rejects grids with more than MaxDimension rows or cols.
func checkDimensions(rows, cols int) error {
	if rows > MaxDimension || cols > MaxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d", gridgraph.ErrTooLarge, rows, cols, MaxDimension, MaxDimension)
	}
	return nil
}

// Get returns the session with the given id.
func (h *Hub) Get(id uuid.UUID) (*visualizer.Session, *visualizer.RunReport, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.sessions[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e.session, e.last, nil
}

// Delete cancels any run of the session and forgets it.
func (h *Hub) Delete(id uuid.UUID) error {
	h.mu.Lock()
	e, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if e.cancel != nil {
		e.cancel()
	}
	h.log.Infof("session %s deleted", id)
	return nil
}

// Start launches a background run of the session. It fails with
// visualizer.ErrBusy while a run is active and with
// visualizer.ErrMissingEndpoints when the start or end is unset.
func (h *Hub) Start(id uuid.UUID) error {
	h.mu.Lock()
	e, ok := h.sessions[id]
	if !ok {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if e.cancel != nil || e.session.Busy() {
		h.mu.Unlock()
		return visualizer.ErrBusy
	}
	g := e.session.Snapshot().Grid
	_, hasStart := g.Start()
	_, hasEnd := g.End()
	if !hasStart || !hasEnd {
		h.mu.Unlock()
		return visualizer.ErrMissingEndpoints
	}
	ctx, cancel := context.WithCancel(h.ctx)
	e.cancel = cancel
	h.runs.Add(1)
	h.mu.Unlock()

	go func() {
		defer h.runs.Done()
		defer cancel()
		report, err := e.session.Visualize(ctx)
		if err != nil && !report.Cancelled {
			h.log.Warnf("session %s: run failed: %v", id, err)
		}
		h.mu.Lock()
		e.cancel = nil
		if report.RunID != uuid.Nil {
			e.last = &report
		}
		h.mu.Unlock()
	}()
	return nil
}

// Run visualizes the session in the caller's goroutine.
func (h *Hub) Run(ctx context.Context, id uuid.UUID) (visualizer.RunReport, error) {
	s, _, err := h.Get(id)
	if err != nil {
		return visualizer.RunReport{}, err
	}
	report, err := s.Visualize(ctx)
	if report.RunID != uuid.Nil {
		h.mu.Lock()
		if e, ok := h.sessions[id]; ok {
			e.last = &report
		}
		h.mu.Unlock()
	}
	return report, err
}

// Cancel stops the background run of the session, if any. It reports
// whether a run was cancelled.
func (h *Hub) Cancel(id uuid.UUID) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.sessions[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if e.cancel == nil {
		return false, nil
	}
	e.cancel()
	return true, nil
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Close cancels every background run and waits for them to return.
func (h *Hub) Close() {
	h.cancel()
	h.runs.Wait()
}
