package gridgraph

import "errors"

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates the grid would have no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: grid must have at least one row and one column")
	// ErrTooLarge indicates a cell count that does not fit in an int.
	ErrTooLarge = errors.New("gridgraph: grid has too many cells")
	// ErrNonRectangular indicates text rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrBadSymbol indicates an unknown character in the text form.
	ErrBadSymbol = errors.New("gridgraph: unknown cell symbol")
	// ErrDuplicateRole indicates more than one start or end cell in the text form.
	ErrDuplicateRole = errors.New("gridgraph: start and end must appear at most once")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("gridgraph: coordinate out of bounds")
	// ErrWallCell indicates an attempt to put the start or end on a wall.
	ErrWallCell = errors.New("gridgraph: cell is a wall")
	// ErrRoleCell indicates an attempt to turn the start or end cell into a wall.
	ErrRoleCell = errors.New("gridgraph: cell is the start or end")
)
