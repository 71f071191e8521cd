package gridgraph

import "fmt"

// SetStart moves the start role to c.
// Returns ErrOutOfBounds or ErrWallCell; the grid is unchanged on error.
// Start and end may share a cell.
func (g *Grid) SetStart(c Coord) error {
	i, err := g.roleIndex(c)
	if err != nil {
		return fmt.Errorf("set start %s: %w", c, err)
	}
	g.start = i
	return nil
}

// SetEnd moves the end role to c.
// Returns ErrOutOfBounds or ErrWallCell; the grid is unchanged on error.
func (g *Grid) SetEnd(c Coord) error {
	i, err := g.roleIndex(c)
	if err != nil {
		return fmt.Errorf("set end %s: %w", c, err)
	}
	g.end = i
	return nil
}

// ClearRoles removes both the start and the end role.
func (g *Grid) ClearRoles() {
	g.start = noIndex
	g.end = noIndex
}

// SetWall makes c a wall (on=true) or open (on=false).
// Returns ErrOutOfBounds, or ErrRoleCell when c holds the start or end.
func (g *Grid) SetWall(c Coord, on bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("set wall %s: %w", c, ErrOutOfBounds)
	}
	i := g.Index(c)
	if on && (i == g.start || i == g.end) {
		return fmt.Errorf("set wall %s: %w", c, ErrRoleCell)
	}
	g.walls[i] = on
	return nil
}

// ToggleWall flips the wall flag of c and returns the new state.
func (g *Grid) ToggleWall(c Coord) (bool, error) {
	if !g.InBounds(c) {
		return false, fmt.Errorf("toggle wall %s: %w", c, ErrOutOfBounds)
	}
	on := !g.walls[g.Index(c)]
	if err := g.SetWall(c, on); err != nil {
		return false, err
	}
	return on, nil
}

func (g *Grid) roleIndex(c Coord) (int, error) {
	if !g.InBounds(c) {
		return noIndex, ErrOutOfBounds
	}
	i := g.Index(c)
	if g.walls[i] {
		return noIndex, ErrWallCell
	}
	return i, nil
}
