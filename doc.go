// Package gridpath draws mazes on a rectangular grid and animates
// Dijkstra's search through them, one distance wave at a time.
//
// 🚀 What is gridpath?
//
//	An engine for an interactive pathfinding visualizer:
//		• Grid model: open cells, walls, one start, one end, per-run state
//		• Search engine: unit-cost Dijkstra reported in deterministic waves
//		• Sessions: click/drag editing rules, busy gating, paced runs
//		• Hosts: a terminal UI and an HTTP API with a websocket event stream
//		• Export: PNG snapshots, MJPEG replays and wave-size charts
//		• Layouts: named mazes saved in memory or in Redis
//
// ✨ Why waves?
//
//   - Every cell finalized at the same distance is reported together
//   - Cells inside a wave come in row-major order, so runs are reproducible
//   - Hosts pace waves with a context-aware pause and can cancel between them
//
// Packages:
//
//	gridgraph/    the grid, its text form, editing and random mazes
//	dijkstra/     the wave-by-wave search and path reconstruction
//	visualizer/   editable sessions with observers and paced runs
//	layout/       named grid topologies and their stores
//	render/       PNG, MJPEG and chart output
//	config/       environment and .env configuration
//	internal/     logging, the terminal host and the HTTP host
//	cmd/gridpath  the command-line entry point
//
// Quick example:
//
//	S.#E        S*#E
//	..#.   →    o*#*
//	....        o***
//
// finds a path of length 7 around the wall, visiting ten cells.
package gridpath
