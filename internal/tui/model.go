// Package tui is the terminal host for a visualizer session.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/internal/log"
	"github.com/katalvlaran/gridpath/layout"
	"github.com/katalvlaran/gridpath/visualizer"
)

// Config wires optional collaborators into the model.
type Config struct {
	Store       layout.Store // Layout storage for save/load; nil disables both keys
	LayoutName  string       // Name used by save/load. Default "tui".
	FitToWindow bool         // Resize the grid to the terminal on every window change
	Logger      *log.Logger
}

// Model represents the terminal UI state around one session.
type Model struct {
	session *visualizer.Session
	bridge  *bridge
	cfg     Config
	log     *log.Logger

	cursor        gridgraph.Coord
	width, height int
	dragging      bool
	running       bool
	cancel        context.CancelFunc
	status        string
	err           error
}

// runFinished is delivered when a Visualize command returns.
type runFinished struct {
	report visualizer.RunReport
	err    error
}

// layoutDone is delivered when a save or load command returns.
type layoutDone struct {
	action string
	err    error
}

// NewModel creates a model driving session.
func NewModel(session *visualizer.Session, cfg Config) Model {
	if cfg.LayoutName == "" {
		cfg.LayoutName = "tui"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Discard()
	}
	b := newBridge()
	session.Subscribe(b)
	return Model{
		session: session,
		bridge:  b,
		cfg:     cfg,
		log:     logger.With("tui"),
		width:   80,
		height:  24,
		status:  "place the start",
	}
}

// Init starts listening for session changes.
func (m Model) Init() tea.Cmd {
	return m.bridge.wait()
}

// Update handles all incoming messages and updates the model state accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch message := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(message)

	case tea.MouseMsg:
		return m.handleMouse(message)

	case tea.WindowSizeMsg:
		m.width, m.height = message.Width, message.Height
		if m.cfg.FitToWindow && !m.running {
			rows := max(message.Height-headerLines-1, 1)
			cols := max(message.Width/cellWidth, 1)
			m.setErr(m.session.Resize(rows, cols))
			m.clampCursor()
		}

	case refreshMsg:
		return m, m.bridge.wait()

	case runFinished:
		m.running = false
		m.cancel = nil
		switch {
		case message.err != nil && message.report.Cancelled:
			m.status = fmt.Sprintf("cancelled after %d cells", message.report.Visited)
		case message.err != nil:
			m.setErr(message.err)
		case message.report.Reached:
			m.status = fmt.Sprintf("visited %d cells, path length %d", message.report.Visited, message.report.PathLength())
		default:
			m.status = fmt.Sprintf("no path: visited %d cells", message.report.Visited)
		}

	case layoutDone:
		if message.err != nil {
			m.setErr(message.err)
		} else {
			m.status = fmt.Sprintf("layout %q %s", m.cfg.LayoutName, message.action)
			m.clampCursor()
		}
	}

	return m, nil
}

func (m *Model) setErr(err error) {
	m.err = err
	if err != nil && !errors.Is(err, visualizer.ErrBusy) {
		m.log.Warnf("%v", err)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch key.String() {
	case "ctrl+c", "q":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)

	case " ", "space":
		m.setErr(m.session.Click(m.cursor))

	case "s":
		m.setErr(m.session.SetMode(visualizer.ModeStart))
	case "e":
		m.setErr(m.session.SetMode(visualizer.ModeEnd))
	case "w":
		m.setErr(m.session.SetMode(visualizer.ModeWall))

	case "c":
		m.setErr(m.session.ClearAll())

	case "m":
		walls, err := m.session.RandomMaze()
		m.setErr(err)
		if err == nil {
			m.status = fmt.Sprintf("random maze with %d walls", walls)
		}

	case "enter":
		return m.visualize()

	case "x", "esc":
		if m.cancel != nil {
			m.cancel()
		}

	case "ctrl+s":
		return m, m.saveLayout()
	case "ctrl+o":
		return m, m.loadLayout()
	}

	return m, nil
}

// handleMouse paints along left-button drags.
func (m Model) handleMouse(ev tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := gridgraph.Coord{Row: ev.Y - headerLines, Col: ev.X / cellWidth}
	switch ev.Action {
	case tea.MouseActionPress:
		if ev.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.err = nil
		m.dragging = true
		m.cursor = c
		m.clampCursor()
		m.setErr(m.session.Press(c))
	case tea.MouseActionMotion:
		if m.dragging {
			m.setErr(m.session.Enter(c))
		}
	case tea.MouseActionRelease:
		m.dragging = false
		m.session.Release()
	}
	return m, nil
}

func (m *Model) move(dr, dc int) {
	m.cursor.Row += dr
	m.cursor.Col += dc
	m.clampCursor()
}

func (m *Model) clampCursor() {
	g := m.session.Snapshot().Grid
	m.cursor.Row = min(max(m.cursor.Row, 0), g.Rows()-1)
	m.cursor.Col = min(max(m.cursor.Col, 0), g.Cols()-1)
}

// visualize starts a run in the background.
func (m Model) visualize() (tea.Model, tea.Cmd) {
	if m.running {
		m.err = visualizer.ErrBusy
		return m, nil
	}
	snap := m.session.Snapshot()
	_, hasStart := snap.Grid.Start()
	_, hasEnd := snap.Grid.End()
	if !hasStart || !hasEnd {
		m.err = visualizer.ErrMissingEndpoints
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.status = "visualizing..."
	session := m.session
	return m, func() tea.Msg {
		defer cancel()
		report, err := session.Visualize(ctx)
		return runFinished{report: report, err: err}
	}
}

func (m Model) saveLayout() tea.Cmd {
	if m.cfg.Store == nil {
		return nil
	}
	store, name, g := m.cfg.Store, m.cfg.LayoutName, m.session.Snapshot().Grid
	return func() tea.Msg {
		l, err := layout.FromGrid(name, g)
		if err == nil {
			err = store.Save(context.Background(), l)
		}
		return layoutDone{action: "saved", err: err}
	}
}

func (m Model) loadLayout() tea.Cmd {
	if m.cfg.Store == nil {
		return nil
	}
	store, name, session := m.cfg.Store, m.cfg.LayoutName, m.session
	return func() tea.Msg {
		l, err := store.Load(context.Background(), name)
		if err != nil {
			return layoutDone{action: "loaded", err: err}
		}
		g, err := l.Grid()
		if err == nil {
			err = session.Replace(g)
		}
		return layoutDone{action: "loaded", err: err}
	}
}

// View renders the header, the grid with the cursor, and a help line.
func (m Model) View() string {
	snap := m.session.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("gridpath"))
	b.WriteString("  ")
	for _, mode := range []visualizer.Mode{visualizer.ModeStart, visualizer.ModeEnd, visualizer.ModeWall} {
		label := " " + mode.String() + " "
		if mode == snap.Mode {
			b.WriteString(activeStyle.Render(label))
		} else {
			b.WriteString(modeStyle.Render(label))
		}
	}
	b.WriteString("  ")
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
	} else {
		b.WriteString(m.status)
	}
	b.WriteString("\n\n")

	g := snap.Grid
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			cell := g.CellAt(r*g.Cols() + c)
			glyph := strings.Repeat(" ", cellWidth)
			if cell.Coord() == m.cursor {
				glyph = "[]"
			}
			b.WriteString(cellStyle(cell).Render(glyph))
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("arrows move · space click · s/e/w mode · enter run · x stop · c clear · m maze · q quit"))
	return b.String()
}

// Cursor returns the cell under the keyboard cursor.
func (m Model) Cursor() gridgraph.Coord { return m.cursor }

// Err returns the last error shown in the header, if any.
func (m Model) Err() error { return m.err }

// Status returns the header status line.
func (m Model) Status() string { return m.status }

// Run starts a full-screen program for session and blocks until it exits.
func Run(ctx context.Context, session *visualizer.Session, cfg Config) error {
	p := tea.NewProgram(NewModel(session, cfg),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
