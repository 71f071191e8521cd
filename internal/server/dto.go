package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/visualizer"
)

// Limits on requested grid sizes. The binding tags below repeat them.
const (
	MaxDimension = 1000  // rows or cols of a grid
	MaxViewport  = 20000 // width or height of a viewport
)

// CreateSessionRequest represents a request to create a new session.
// Either Rows and Cols or Width and Height must be given; a pixel viewport
// is converted with the configured sizing.
type CreateSessionRequest struct {
	Rows   int `json:"rows" binding:"min=0,max=1000"`
	Cols   int `json:"cols" binding:"min=0,max=1000"`
	Width  int `json:"width" binding:"min=0,max=20000"`
	Height int `json:"height" binding:"min=0,max=20000"`
}

// CoordRequest addresses one cell.
type CoordRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (r CoordRequest) coord() gridgraph.Coord {
	return gridgraph.Coord{Row: *r.Row, Col: *r.Col}
}

// ModeRequest switches the edit mode.
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// DragRequest is one step of a drag stroke.
type DragRequest struct {
	Action string `json:"action" binding:"required,oneof=press enter release"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

// ResizeRequest replaces the session grid with an empty one.
type ResizeRequest = CreateSessionRequest

// SaveLayoutRequest stores a layout either from a live session or from
// text rows.
type SaveLayoutRequest struct {
	SessionID string   `json:"session_id"`
	Lines     []string `json:"lines" binding:"max=1000,dive,max=1000"`
}

// CoordResponse is a cell position.
type CoordResponse struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func coordResponse(c gridgraph.Coord) CoordResponse {
	return CoordResponse{Row: c.Row, Col: c.Col}
}

func coordsResponse(cs []gridgraph.Coord) []CoordResponse {
	out := make([]CoordResponse, len(cs))
	for i, c := range cs {
		out[i] = coordResponse(c)
	}
	return out
}

// SessionResponse is the state of a session.
type SessionResponse struct {
	ID    uuid.UUID      `json:"id"`
	Rows  int            `json:"rows"`
	Cols  int            `json:"cols"`
	Mode  string         `json:"mode"`
	Busy  bool           `json:"busy"`
	Start *CoordResponse `json:"start,omitempty"`
	End   *CoordResponse `json:"end,omitempty"`
	Lines []string       `json:"lines"`
	Last  *RunResponse   `json:"last_run,omitempty"`
}

func sessionResponse(snap visualizer.Snapshot, last *visualizer.RunReport) SessionResponse {
	g := snap.Grid
	resp := SessionResponse{
		ID:    snap.SessionID,
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		Mode:  snap.Mode.String(),
		Busy:  snap.Busy,
		Lines: g.Lines(),
	}
	if st, ok := g.Start(); ok {
		c := coordResponse(st)
		resp.Start = &c
	}
	if en, ok := g.End(); ok {
		c := coordResponse(en)
		resp.End = &c
	}
	if last != nil {
		r := runResponse(*last)
		resp.Last = &r
	}
	return resp
}

// RunResponse summarises a finished run.
type RunResponse struct {
	RunID      uuid.UUID       `json:"run_id"`
	Waves      int             `json:"waves"`
	Visited    int             `json:"visited"`
	Reached    bool            `json:"reached"`
	PathLength int             `json:"path_length"`
	Path       []CoordResponse `json:"path"`
	Cancelled  bool            `json:"cancelled"`
	ElapsedMs  int64           `json:"elapsed_ms"`
}

func runResponse(r visualizer.RunReport) RunResponse {
	return RunResponse{
		RunID:      r.RunID,
		Waves:      r.Waves,
		Visited:    r.Visited,
		Reached:    r.Reached,
		PathLength: r.PathLength(),
		Path:       coordsResponse(r.Path),
		Cancelled:  r.Cancelled,
		ElapsedMs:  r.Elapsed.Milliseconds(),
	}
}

// Event types pushed over the events socket.
const (
	EventGrid = "grid"
	EventWave = "wave"
	EventPath = "path"
	EventDone = "done"
)

// Event is one message on the events socket.
type Event struct {
	Type    string           `json:"type"`
	RunID   *uuid.UUID       `json:"run_id,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
	Wave    *WaveResponse    `json:"wave,omitempty"`
	Cell    *CoordResponse   `json:"cell,omitempty"`
	Run     *RunResponse     `json:"run,omitempty"`
	SentAt  time.Time        `json:"sent_at"`
}

// WaveResponse is one batch of finalized cells.
type WaveResponse struct {
	Index    int             `json:"index"`
	Distance int             `json:"distance"`
	Cells    []CoordResponse `json:"cells"`
	Reached  bool            `json:"reached"`
	Last     bool            `json:"last"`
}

func waveResponse(w dijkstra.Wave) WaveResponse {
	cells := make([]CoordResponse, len(w.Cells))
	for i, c := range w.Cells {
		cells[i] = coordResponse(c.Coord())
	}
	return WaveResponse{Index: w.Index, Distance: w.Distance, Cells: cells, Reached: w.Reached, Last: w.Last}
}

// LayoutResponse is a stored layout.
type LayoutResponse struct {
	Name    string    `json:"name"`
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
	Lines   []string  `json:"lines"`
	SavedAt time.Time `json:"saved_at"`
}
