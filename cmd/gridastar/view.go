package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/gridgen"
	"github.com/pdrpinto/gridastar/internal/gridio"
	"github.com/pdrpinto/gridastar/internal/view"
)

type viewOptions struct {
	gridFile   string
	obstacle   int
	start      string
	goal       string
	rows, cols int
	seed       int64
}

func newViewCmd(root *rootOptions) *cobra.Command {
	opts := &viewOptions{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show a grid in the terminal and search it interactively",
		Long: `Show a grid in the terminal and search it interactively.

Keys: f or Enter finds the path, r generates a new grid, q or Esc quits.

Examples:
  gridastar view --rows 20 --cols 30
  gridastar view --grid maze.txt --start 0,0 --goal 9,9`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.gridFile, "grid", "g", "", "Grid file (default: generate one)")
	cmd.Flags().IntVar(&opts.obstacle, "obstacle", astar.DefaultObstacle, "Label that marks an obstacle")
	cmd.Flags().StringVarP(&opts.start, "start", "s", "0,0", "Start cell for --grid")
	cmd.Flags().StringVarP(&opts.goal, "goal", "t", "", "Goal cell for --grid (default: bottom-right)")
	cmd.Flags().IntVar(&opts.rows, "rows", gridgen.DefaultSize, "Rows of generated grids")
	cmd.Flags().IntVar(&opts.cols, "cols", gridgen.DefaultSize, "Columns of generated grids")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed of the first generated grid (0 = time based)")

	return cmd
}

func (o *viewOptions) fileScenario(cmd *cobra.Command) (gridgen.Scenario, error) {
	grid, err := loadGrid(cmd, o.gridFile, o.obstacle)
	if err != nil {
		return gridgen.Scenario{}, fmt.Errorf("load grid: %w", err)
	}
	start, err := gridio.ParseCell(o.start)
	if err != nil {
		return gridgen.Scenario{}, fmt.Errorf("--start: %w", err)
	}
	goal := astar.Cell{Row: grid.Rows() - 1, Col: grid.Cols() - 1}
	if o.goal != "" {
		if goal, err = gridio.ParseCell(o.goal); err != nil {
			return gridgen.Scenario{}, fmt.Errorf("--goal: %w", err)
		}
	}
	return gridgen.Scenario{Grid: grid, Start: start, Goal: goal}, nil
}

func runView(cmd *cobra.Command, opts *viewOptions) error {
	var scenario gridgen.Scenario
	var regenerate func() (gridgen.Scenario, error)
	var err error

	if opts.gridFile != "" {
		scenario, err = opts.fileScenario(cmd)
	} else {
		regenerate = func() (gridgen.Scenario, error) {
			return gridgen.NewScenario(gridgen.Config{Rows: opts.rows, Cols: opts.cols})
		}
		scenario, err = gridgen.NewScenario(gridgen.Config{Rows: opts.rows, Cols: opts.cols, Seed: opts.seed})
	}
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	return view.Run(context.Background(), screen, view.New(scenario, regenerate))
}
