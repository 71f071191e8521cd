package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/gridgraph"
	"github.com/katalvlaran/gridpath/visualizer"
)

// refreshMsg asks the model to redraw because the session changed.
type refreshMsg struct{}

// bridge forwards session events to the program as coalesced redraw
// signals. Sends never block: one pending signal is enough.
type bridge struct {
	visualizer.NopObserver
	signal chan struct{}
}

func newBridge() *bridge {
	return &bridge{signal: make(chan struct{}, 1)}
}

func (b *bridge) poke() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *bridge) GridChanged(visualizer.Snapshot) { b.poke() }
func (b *bridge) WaveVisited(uuid.UUID, dijkstra.Wave) { b.poke() }
func (b *bridge) PathCell(uuid.UUID, gridgraph.Cell) { b.poke() }

// wait returns a command that resolves on the next signal.
func (b *bridge) wait() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return refreshMsg{}
	}
}
