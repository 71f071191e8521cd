package gridgraph

// Sizing describes how a viewport maps onto grid dimensions.
type Sizing struct {
	CellSize     int // Edge length of one cell, in viewport units
	HeaderHeight int // Space reserved above the grid for controls
}

// DefaultSizing returns CellSize=20 and HeaderHeight=60.
func DefaultSizing() Sizing {
	return Sizing{CellSize: 20, HeaderHeight: 60}
}

// DimensionsFor fits a grid into a width×height viewport:
//
//	rows = (height - HeaderHeight) / CellSize
//	cols = width / CellSize
//
// Both results are clamped to at least 1 so NewGrid always accepts them.
// A non-positive CellSize is treated as 1.
func DimensionsFor(width, height int, s Sizing) (rows, cols int) {
	size := s.CellSize
	if size <= 0 {
		size = 1
	}
	rows = (height - s.HeaderHeight) / size
	cols = width / size
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}
