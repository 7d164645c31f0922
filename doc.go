// Package astar finds shortest paths on 2-D obstacle grids with A*.
//
// It exposes three entry points:
//
//   - FindPath: validate a Grid and search it with 8-directional unit-cost
//     moves and the Manhattan heuristic.
//   - FindPaths: run many independent FindPath calls on a worker pool.
//   - Search: the generic A* engine behind both, usable with any Graph.
//
// Searches keep no state between calls and never modify the grid, so any
// number of them may run concurrently over the same Grid.
package astar
