package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/gridpath/gridgraph"
)

// cellWidth is the number of terminal columns one grid cell occupies.
const cellWidth = 2

// headerLines is the number of lines View prints above the grid.
const headerLines = 2

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	modeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("63"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	openStyle    = lipgloss.NewStyle().Background(lipgloss.Color("255"))
	wallStyle    = lipgloss.NewStyle().Background(lipgloss.Color("23"))
	startStyle   = lipgloss.NewStyle().Background(lipgloss.Color("41"))
	endStyle     = lipgloss.NewStyle().Background(lipgloss.Color("160"))
	visitedStyle = lipgloss.NewStyle().Background(lipgloss.Color("80"))
	pathStyle    = lipgloss.NewStyle().Background(lipgloss.Color("228"))
)

func cellStyle(c gridgraph.Cell) lipgloss.Style {
	switch {
	case c.IsStart:
		return startStyle
	case c.IsEnd:
		return endStyle
	case c.IsWall:
		return wallStyle
	case c.IsShortestPath:
		return pathStyle
	case c.Visited:
		return visitedStyle
	default:
		return openStyle
	}
}
