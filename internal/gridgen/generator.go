// Package gridgen builds random demo grids. It is the only place that
// repairs a grid so the chosen start and goal are passable; the search
// package rejects blocked endpoints instead.
package gridgen

import (
	"fmt"
	"math/rand"
	"time"

	astar "github.com/pdrpinto/gridastar"
)

// Label values produced by Generate.
const (
	Open     = 0
	Rough    = 1
	Obstacle = astar.DefaultObstacle
)

const DefaultSize = 20

type Config struct {
	Rows, Cols int   // 0 = DefaultSize
	Seed       int64 // 0 = time based
}

// Scenario is a generated grid plus endpoints that are guaranteed passable.
type Scenario struct {
	Grid  *astar.Grid
	Start astar.Cell
	Goal  astar.Cell
	Seed  int64
}

func (cfg Config) normalize() (Config, error) {
	if cfg.Rows < 0 || cfg.Cols < 0 {
		return cfg, fmt.Errorf("gridgen: negative size %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Rows == 0 {
		cfg.Rows = DefaultSize
	}
	if cfg.Cols == 0 {
		cfg.Cols = DefaultSize
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// Generate fills a grid with labels drawn uniformly from {Open, Rough,
// Obstacle}, then forces between 1 and rows*cols/8 random cells to Obstacle.
func Generate(cfg Config) (*astar.Grid, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return nil, err
	}
	return generate(rand.New(rand.NewSource(cfg.Seed)), cfg.Rows, cfg.Cols)
}

func generate(rng *rand.Rand, rows, cols int) (*astar.Grid, error) {
	labels := make([][]int, rows)
	for r := range labels {
		labels[r] = make([]int, cols)
		for c := range labels[r] {
			labels[r][c] = rng.Intn(Obstacle + 1)
		}
	}

	extra := 1 + rng.Intn(max(1, rows*cols/8))
	for i := 0; i < extra; i++ {
		labels[rng.Intn(rows)][rng.Intn(cols)] = Obstacle
	}
	return astar.NewGrid(labels, Obstacle)
}

// Clear returns a copy of grid with every given in-bounds cell set to Open.
func Clear(grid *astar.Grid, cells ...astar.Cell) (*astar.Grid, error) {
	labels := grid.Labels()
	for _, c := range cells {
		if !grid.InBounds(c) {
			return nil, fmt.Errorf("gridgen: clear %v: %w", c, astar.ErrOutOfBounds)
		}
		labels[c.Row][c.Col] = Open
	}
	return astar.NewGrid(labels, grid.Obstacle())
}

// RandomGoal picks a cell away from the top row and left column when the
// grid is big enough to have one.
func RandomGoal(rng *rand.Rand, rows, cols int) astar.Cell {
	pick := func(n int) int {
		if n < 2 {
			return 0
		}
		return 1 + rng.Intn(n-1)
	}
	return astar.Cell{Row: pick(rows), Col: pick(cols)}
}

// NewScenario generates a grid, starts at (0,0), picks a random goal and
// clears both endpoints.
func NewScenario(cfg Config) (Scenario, error) {
	cfg, err := cfg.normalize()
	if err != nil {
		return Scenario{}, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	grid, err := generate(rng, cfg.Rows, cfg.Cols)
	if err != nil {
		return Scenario{}, err
	}

	start := astar.Cell{}
	goal := RandomGoal(rng, cfg.Rows, cfg.Cols)
	grid, err = Clear(grid, start, goal)
	if err != nil {
		return Scenario{}, err
	}
	return Scenario{Grid: grid, Start: start, Goal: goal, Seed: cfg.Seed}, nil
}
