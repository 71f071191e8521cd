package gridgraph

// Reset returns every cell's run state to its initial value: distance
// Infinity, not visited, no back-link, not on the shortest path.
// Walls, start and end are preserved. Reset is idempotent.
// Complexity: O(W×H).
func (g *Grid) Reset() {
	for i := range g.dist {
		g.dist[i] = Infinity
		g.visited[i] = false
		g.prev[i] = noIndex
		g.onPath[i] = false
	}
}

// ClearAll performs Reset and removes every wall. Start and end are kept;
// they are never walls, so no role needs special handling.
// Complexity: O(W×H).
func (g *Grid) ClearAll() {
	g.Reset()
	for i := range g.walls {
		g.walls[i] = false
	}
}
