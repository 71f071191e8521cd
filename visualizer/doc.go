// Package visualizer is the host-agnostic controller behind every gridpath
// front end. It owns one grid, turns pointer and button input into grid
// edits, and drives the animated search.
//
// A Session reproduces the interaction rules of the classic Dijkstra grid
// visualizer:
//
//   - Three edit modes: ModeStart, ModeEnd, ModeWall. Placing the start
//     switches to ModeEnd. Selecting ModeStart clears both endpoints;
//     selecting ModeEnd without a start falls back to ModeStart.
//   - Clicking a wall only removes it, and only in ModeWall. Walls are never
//     placed on the start or end.
//   - Every edit first clears the previous run's visualisation.
//   - Press / Enter / Release paint along a drag; a stroke touches each cell
//     at most once.
//   - While a run or its path animation is in progress the session is busy
//     and every edit returns ErrBusy.
//
// Visualize runs dijkstra.Run on a private copy of the grid with the
// configured wave interval, mirrors each wave onto the shared grid, then
// reveals the shortest path one cell per PathStepDelay. Observers receive
// GridChanged, WaveVisited, PathCell and RunFinished events synchronously
// from the goroutine that caused them; they must not block.
//
// All Session methods are safe for concurrent use.
package visualizer
