package dijkstra

import "github.com/katalvlaran/gridpath/gridgraph"

// ShortestPath rebuilds the path the last search found to end by following
// back-links until a cell without one. The result runs start → end.
//
// It returns nil when end was never reached: end has no back-link and is
// not the start (the only cell at distance 0). When start == end the
// result is that single cell.
//
// Complexity: O(path length).
func ShortestPath(g *gridgraph.Grid, end gridgraph.Coord) []gridgraph.Coord {
	if g == nil || !g.InBounds(end) {
		return nil
	}
	if _, ok := g.Previous(end); !ok && g.Distance(end) != 0 {
		return nil
	}

	var path []gridgraph.Coord
	for cur, ok := end, true; ok; cur, ok = g.Previous(cur) {
		path = append(path, cur)
	}
	// reverse to get start → end
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// PathLength returns the number of moves in path (0 for an empty or
// single-cell path).
func PathLength(path []gridgraph.Coord) int {
	if len(path) == 0 {
		return 0
	}
	return len(path) - 1
}
