package astar

import (
	"fmt"
)

// DefaultObstacle is the label the demo generator uses for impassable cells.
const DefaultObstacle = 2

// Cell is a (row, column) coordinate on a Grid.
type Cell struct {
	Row int
	Col int
}

// Less orders cells row-major.
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

// Directions lists the 8 legal moves in the order neighbors are generated.
var Directions = [8]Cell{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Grid is a rectangular matrix of cell labels. A label equal to the obstacle
// sentinel is impassable; every other label costs 1 to enter regardless of
// its value. A Grid never changes after NewGrid returns, so one value can be
// shared by concurrent searches.
type Grid struct {
	rows, cols int
	obstacle   int
	labels     []int
}

// NewGrid copies labels into a new Grid.
func NewGrid(labels [][]int, obstacle int) (*Grid, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}
	cols := len(labels[0])
	if cols == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrInvalidGrid)
	}

	grid := &Grid{
		rows:     len(labels),
		cols:     cols,
		obstacle: obstacle,
		labels:   make([]int, 0, len(labels)*cols),
	}
	for r, row := range labels {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, r, len(row), cols)
		}
		for c, label := range row {
			if label < 0 {
				return nil, fmt.Errorf("%w: negative label %d at %v", ErrInvalidGrid, label, Cell{r, c})
			}
		}
		grid.labels = append(grid.labels, row...)
	}
	return grid, nil
}

func (g *Grid) Rows() int     { return g.rows }
func (g *Grid) Cols() int     { return g.cols }
func (g *Grid) Obstacle() int { return g.obstacle }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// Label returns the label at c. It panics if c is out of bounds.
func (g *Grid) Label(c Cell) int {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("astar: cell %v outside %dx%d grid", c, g.rows, g.cols))
	}
	return g.labels[c.Row*g.cols+c.Col]
}

// IsObstacle reports whether c is in bounds and carries the obstacle label.
func (g *Grid) IsObstacle(c Cell) bool {
	return g.InBounds(c) && g.labels[c.Row*g.cols+c.Col] == g.obstacle
}

// Labels returns a copy of the label matrix.
func (g *Grid) Labels() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		copy(out[r], g.labels[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Neighbors returns the passable cells one move away from node, each at cost 1.
func (g *Grid) Neighbors(node Cell) []Neighbor[Cell] {
	out := make([]Neighbor[Cell], 0, len(Directions))
	for _, d := range Directions {
		next := Cell{node.Row + d.Row, node.Col + d.Col}
		if !g.InBounds(next) || g.IsObstacle(next) {
			continue
		}
		out = append(out, Neighbor[Cell]{ID: next, Cost: 1})
	}
	return out
}

// Less lets the frontier break f-score ties by cell order.
func (g *Grid) Less(a, b Cell) bool { return a.Less(b) }

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|.
//
// With diagonal moves at unit cost this can overestimate the remaining cost,
// so FindPath is not guaranteed to return a cheapest path when diagonal
// shortcuts around obstacles exist. FindPath uses it anyway to keep its
// results stable; pass a Chebyshev heuristic to Search for strict optimality.
func Manhattan(a, b Cell) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
