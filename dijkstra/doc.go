// Package dijkstra runs a uniform-cost shortest-path search over a
// gridgraph.Grid and reports its progress one distance wave at a time, so a
// host can animate the search as it happens.
//
// Overview:
//
//   - Every move between orthogonal neighbours costs 1; walls are never
//     entered. With uniform costs Dijkstra's algorithm visits cells in
//     breadth-first waves: wave d holds every cell at distance d.
//   - Waves produces those waves lazily, with no pacing.
//   - Run drains Waves, hands each wave's cells to a callback, and pauses
//     for a configurable interval between waves so a renderer can redraw.
//   - ShortestPath walks the back-links the search left on the grid from the
//     end cell back to the start.
//
// Ordering guarantees:
//
//   - Within a wave, cells are visited in row-major order of the grid.
//   - Neighbours are expanded in the grid's fixed order: up, down, left, right.
//   - A cell's back-link points at the first cell (in that visiting order)
//     that reached it. Later equal-cost arrivals do not overwrite it.
//   - The search stops as soon as the end cell is visited; the rest of its
//     wave stays unvisited. If the end is unreachable the search stops when
//     the frontier empties, and the end cell never appears in the order.
//
// These rules make the visitation order fully deterministic for a given grid,
// start and end, and identical to a naive Dijkstra that stably re-sorts its
// whole unvisited set by distance before each wave.
//
// Complexity:
//
//   - Time:  O(V + Σ wᵢ log wᵢ) where wᵢ is the size of wave i; at most
//     O(V log V). Each cell is enqueued and visited at most once.
//   - Space: O(V) for the current and next wave.
//
// Side effects:
//
//	The search writes distance, visited and previous into the grid's run-state
//	table and leaves them there for inspection. It never touches walls, the
//	start/end roles, or shortest-path marks. Call Grid.Reset before each run.
//
// Error handling (sentinel errors):
//
//   - ErrNilGrid:      the grid pointer is nil.
//   - ErrOutOfBounds:  start or end lies outside the grid.
//   - ErrWallEndpoint: start or end is a wall.
//   - ErrBadInterval:  (panic) WithWaveInterval was given a negative duration.
//
// An unreachable end cell is not an error.
//
// API reference:
//
//	func Waves(g *gridgraph.Grid, start, end gridgraph.Coord) iter.Seq2[Wave, error]
//
//	func Run(
//	    ctx context.Context,
//	    g *gridgraph.Grid,
//	    start, end gridgraph.Coord,
//	    onBatch func([]gridgraph.Cell),
//	    opts ...Option,
//	) ([]gridgraph.Cell, error)
//
//	  - onBatch:  called once per wave with the cells it finalized; may be nil.
//	  - opts:     WithWaveInterval(time.Duration), WithOnWave(func(Wave)).
//	  - returns:  the visitation order; on cancellation the order so far and
//	              ctx.Err().
//
//	func ShortestPath(g *gridgraph.Grid, end gridgraph.Coord) []gridgraph.Coord
//
// Thread safety:
//
//   - A run owns the grid. Do not edit it or start a second run on it until
//     Run returns.
//   - Cancellation is observed only between waves, so a wave handed to
//     onBatch is never reported twice and never half-reported.
package dijkstra
