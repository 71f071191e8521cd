package gridgraph

import (
	"container/list"
	"fmt"
)

// CarveCorridor opens the cheapest corridor between a and b, where moving
// into an open cell costs 0 and moving into a wall costs 1 (the wall is
// removed). It returns the corridor (a and b included) and the number of
// walls removed.
//
// Behavior:
//  1. Validate both endpoints are in bounds (ErrOutOfBounds).
//  2. 0-1 BFS from a:
//     • open neighbour → cost 0, pushed to the front
//     • wall neighbour → cost 1, pushed to the back
//  3. Stop when b is popped.
//  4. Reconstruct the corridor via predecessors and clear its walls.
//
// Run state is not touched. If a and b are already connected the result
// costs 0 and the grid is unchanged.
//
// Complexity: O(W·H) on average.
// Memory:     O(W·H) for distance and prev.
func (g *Grid) CarveCorridor(a, b Coord) (path []Coord, removed int, err error) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return nil, 0, fmt.Errorf("carve corridor %s→%s: %w", a, b, ErrOutOfBounds)
	}

	n := g.Len()
	dist := make([]int, n)
	prev := make([]int, n)
	for i := range dist {
		dist[i] = Infinity
		prev[i] = noIndex
	}

	src, dst := g.Index(a), g.Index(b)
	dist[src] = 0
	if g.walls[src] {
		dist[src] = 1
	}
	dq := list.New()
	dq.PushFront(src)

	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if u == dst {
			break
		}
		uc := g.Coordinate(u)
		for _, d := range g.neighborOffsets {
			vc := Coord{Row: uc.Row + d[0], Col: uc.Col + d[1]}
			if !g.InBounds(vc) {
				continue
			}
			v := g.Index(vc)
			step := 0
			if g.walls[v] {
				step = 1
			}
			nd := dist[u] + step
			if nd < dist[v] {
				dist[v] = nd
				prev[v] = u
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}

	// The grid is connected under walls-as-cost, so dst is always reached.
	for at := dst; at != noIndex; at = prev[at] {
		path = append(path, g.Coordinate(at))
		if g.walls[at] {
			g.walls[at] = false
			removed++
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, removed, nil
}
