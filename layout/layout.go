// Package layout saves and restores grid topologies (walls, start, end)
// under a name, so a maze drawn once can be reloaded into any session.
//
// A Layout stores the grid in the gridgraph text form without run state.
// Two Store implementations are provided: MemoryStore for single-process
// hosts and RedisStore for hosts sharing layouts through Redis.
package layout

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/katalvlaran/gridpath/gridgraph"
)

// Sentinel errors.
var (
	// ErrEmptyName indicates a layout without a name.
	ErrEmptyName = errors.New("layout: name is empty")

	// ErrBadName indicates a name with characters outside [A-Za-z0-9._-] or longer than 64.
	ErrBadName = errors.New("layout: invalid name")

	// ErrNotFound indicates that no layout is stored under the name.
	ErrNotFound = errors.New("layout: not found")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

// Layout is a named grid topology.
type Layout struct {
	Name    string    `json:"name"`
	Rows    int       `json:"rows"`
	Cols    int       `json:"cols"`
	Lines   []string  `json:"lines"`
	SavedAt time.Time `json:"savedAt"`
}

// ValidateName checks that name can be used as a storage key.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// FromGrid captures g's topology under name. Run state is dropped.
func FromGrid(name string, g *gridgraph.Grid) (Layout, error) {
	if err := ValidateName(name); err != nil {
		return Layout{}, err
	}
	if g == nil {
		return Layout{}, gridgraph.ErrEmptyGrid
	}
	return Layout{
		Name:  name,
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		Lines: g.TopologyLines(),
	}, nil
}

// Grid rebuilds the grid described by l. Rows and Cols, when set, must
// match the lines.
func (l Layout) Grid() (*gridgraph.Grid, error) {
	g, err := gridgraph.Parse(l.Lines)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", l.Name, err)
	}
	if (l.Rows != 0 || l.Cols != 0) && (g.Rows() != l.Rows || g.Cols() != l.Cols) {
		return nil, fmt.Errorf("layout %q: %w: header says %dx%d, lines are %dx%d",
			l.Name, gridgraph.ErrNonRectangular, l.Rows, l.Cols, g.Rows(), g.Cols())
	}
	return g, nil
}

// Validate checks the name and that the lines parse into the declared size.
func (l Layout) Validate() error {
	if err := ValidateName(l.Name); err != nil {
		return err
	}
	_, err := l.Grid()
	return err
}

// Marshal encodes l as JSON.
func Marshal(l Layout) ([]byte, error) {
	return json.Marshal(l)
}

// Unmarshal decodes and validates a JSON layout.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("layout: decode: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}
