package gridgraph

// Regions finds all contiguous regions of open (non-wall) cells under
// 4-directional connectivity. Start and end count as open.
// Returns a slice of regions; each region lists its coordinates in BFS
// discovery order, and regions appear in row-major order of their first cell.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for seen flags and output.
func (g *Grid) Regions() [][]Coord {
	seen := make([]bool, g.Len())
	var regions [][]Coord

	for i0 := range g.walls {
		if g.walls[i0] || seen[i0] {
			continue
		}
		// BFS to collect the region
		queue := []int{i0}
		seen[i0] = true
		var region []Coord

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			uc := g.Coordinate(u)
			region = append(region, uc)
			for _, d := range g.neighborOffsets {
				vc := Coord{Row: uc.Row + d[0], Col: uc.Col + d[1]}
				if !g.InBounds(vc) {
					continue
				}
				vi := g.Index(vc)
				if g.walls[vi] || seen[vi] {
					continue
				}
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
		regions = append(regions, region)
	}
	return regions
}

// Connected reports whether a and b are in the same open region.
// Out-of-bounds or wall endpoints are never connected.
// Time: O(W·H) worst case; stops as soon as b is reached.
func (g *Grid) Connected(a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	ai, bi := g.Index(a), g.Index(b)
	if g.walls[ai] || g.walls[bi] {
		return false
	}
	seen := make([]bool, g.Len())
	seen[ai] = true
	queue := []int{ai}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		if u == bi {
			return true
		}
		uc := g.Coordinate(u)
		for _, d := range g.neighborOffsets {
			vc := Coord{Row: uc.Row + d[0], Col: uc.Col + d[1]}
			if !g.InBounds(vc) {
				continue
			}
			vi := g.Index(vc)
			if !g.walls[vi] && !seen[vi] {
				seen[vi] = true
				queue = append(queue, vi)
			}
		}
	}
	return false
}
