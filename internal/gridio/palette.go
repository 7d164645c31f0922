package gridio

import (
	astar "github.com/pdrpinto/gridastar"
)

// Kind is what a renderer should show for one cell.
type Kind int

const (
	KindOpen Kind = iota
	KindObstacle
	KindPath
	KindStart
	KindGoal
)

// labelColors follows the demo palette: plain ground, rough ground, wall.
var labelColors = map[int]string{
	0: "green",
	1: "darkgreen",
}

// Marks holds the overlay drawn on top of grid labels.
type Marks struct {
	Start astar.Cell
	Goal  astar.Cell
	Path  map[astar.Cell]bool
}

func NewMarks(start, goal astar.Cell, path []astar.Cell) Marks {
	onPath := make(map[astar.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	return Marks{Start: start, Goal: goal, Path: onPath}
}

// Classify resolves the overlay for c. Endpoints win over the path, and the
// path wins over labels.
func (m Marks) Classify(grid *astar.Grid, c astar.Cell) Kind {
	switch {
	case c == m.Start:
		return KindStart
	case c == m.Goal:
		return KindGoal
	case m.Path[c]:
		return KindPath
	case grid.IsObstacle(c):
		return KindObstacle
	default:
		return KindOpen
	}
}

// ColorName returns a CSS/X11 colour name for a cell.
func ColorName(kind Kind, label int) string {
	switch kind {
	case KindStart:
		return "blue"
	case KindGoal:
		return "red"
	case KindPath:
		return "yellow"
	case KindObstacle:
		return "black"
	}
	if name, ok := labelColors[label]; ok {
		return name
	}
	return "olive"
}
