package astar

import (
	"context"
	"fmt"
)

// Validate checks that grid is usable and that start and goal are in bounds
// and passable. It never changes the grid.
func Validate(grid *Grid, start, goal Cell) error {
	if grid == nil || grid.rows == 0 || grid.cols == 0 {
		return fmt.Errorf("%w: grid is empty", ErrInvalidGrid)
	}
	for _, endpoint := range []struct {
		name string
		cell Cell
	}{{"start", start}, {"goal", goal}} {
		if !grid.InBounds(endpoint.cell) {
			return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrOutOfBounds, endpoint.name, endpoint.cell, grid.rows, grid.cols)
		}
		if grid.IsObstacle(endpoint.cell) {
			return fmt.Errorf("%w: %s %v", ErrBlockedEndpoint, endpoint.name, endpoint.cell)
		}
	}
	return nil
}

// FindPath searches grid for a path from start to goal using 8-directional
// unit-cost moves and the Manhattan heuristic. Frontier ties are broken by
// row-major cell order, so equal inputs always give equal paths.
//
// Precondition failures (ErrInvalidGrid, ErrOutOfBounds, ErrBlockedEndpoint)
// are returned before any node is expanded. When the goal is unreachable the
// result has Found == false and the error is nil.
func FindPath(ctx context.Context, grid *Grid, start, goal Cell, options ...Option) (Result[Cell], error) {
	if err := Validate(grid, start, goal); err != nil {
		return Result[Cell]{}, err
	}
	return Search[Cell](ctx, grid, start, goal, Manhattan, options...)
}
