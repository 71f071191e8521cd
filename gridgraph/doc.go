// Package gridgraph models the maze a shortest-path search runs over: a
// rectangular grid of cells addressed by (row, col), with wall obstacles,
// a start cell, an end cell, and per-cell run state written by the search.
//
// What:
//
//   - Grid keeps two tables over the same row-major index space:
//     topology (walls, start, end) and run state (distance, visited,
//     back-link, shortest-path mark).
//   - Neighbors returns the orthogonal, unvisited, non-wall neighbors of a
//     cell in the fixed order up, down, left, right.
//   - Reset wipes run state; ClearAll also removes walls.
//   - Role edits (SetStart, SetEnd, SetWall, ToggleWall) enforce that start
//     and end are never walls.
//   - Regions and CarveCorridor analyse and repair connectivity; RandomWalls
//     scatters obstacles.
//   - Parse and String convert to and from a compact text form.
//
// Why:
//
//   - Topology persists across runs while run state gets a fresh lifecycle
//     every run, so one run can never leak into the next.
//   - Back-links are row-major indices, not cell pointers, which keeps the
//     traversal table decoupled from the topology.
//
// Complexity:
//
//   - Neighbors:     O(1).
//   - Reset:         O(W×H).
//   - Regions:       O(W×H), Memory: O(W×H).
//   - CarveCorridor: O(W×H) on average (0-1 BFS), Memory: O(W×H).
//
// Text form:
//
//	S  start      E  end      #  wall      .  open
//	B  start and end on the same cell
//	o  visited    *  shortest path        (String only; Parse reads them as open)
//
// Errors:
//
//   - ErrEmptyGrid: grid has no rows or no columns.
//   - ErrTooLarge: rows×cols overflows int.
//   - ErrNonRectangular: text rows have differing lengths.
//   - ErrBadSymbol: unknown character in the text form.
//   - ErrDuplicateRole: more than one S or E (B counts as both) in the text form.
//   - ErrOutOfBounds: coordinate outside the grid.
//   - ErrWallCell: start or end placed on a wall.
//   - ErrRoleCell: wall placed on the start or end cell.
//
// Thread safety:
//
//	Grid is not safe for concurrent mutation. A search owns the grid for the
//	duration of a run; callers serialise edits around it.
package gridgraph
