package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/gridio"
)

type solveOptions struct {
	gridFile      string
	obstacle      int
	start         string
	goal          string
	maxExpansions int
	htmlOut       string
}

func newSolveCmd(root *rootOptions) *cobra.Command {
	opts := &solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a path between two cells of a grid file",
		Long: `Find a path between two cells of a grid file.

The grid file holds one row per line with whitespace-separated labels, or an
HTML table written by --html. Cells are given as row,col.

Examples:
  gridastar solve --grid maze.txt --start 0,0 --goal 0,4
  gridastar solve --grid - --start 0,0 --goal 9,9 --html out.html < maze.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.gridFile, "grid", "g", "", "Grid file, or - for stdin")
	cmd.Flags().IntVar(&opts.obstacle, "obstacle", astar.DefaultObstacle, "Label that marks an obstacle")
	cmd.Flags().StringVarP(&opts.start, "start", "s", "0,0", "Start cell as row,col")
	cmd.Flags().StringVarP(&opts.goal, "goal", "t", "", "Goal cell as row,col")
	cmd.Flags().IntVar(&opts.maxExpansions, "max-expansions", 0, "Stop after this many expansions (0 = no limit)")
	cmd.Flags().StringVar(&opts.htmlOut, "html", "", "Also write an HTML rendering to this file")
	_ = cmd.MarkFlagRequired("grid")
	_ = cmd.MarkFlagRequired("goal")

	return cmd
}

func runSolve(cmd *cobra.Command, root *rootOptions, opts *solveOptions) error {
	logger, err := root.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	grid, err := loadGrid(cmd, opts.gridFile, opts.obstacle)
	if err != nil {
		return fmt.Errorf("load grid: %w", err)
	}
	start, err := gridio.ParseCell(opts.start)
	if err != nil {
		return fmt.Errorf("--start: %w", err)
	}
	goal, err := gridio.ParseCell(opts.goal)
	if err != nil {
		return fmt.Errorf("--goal: %w", err)
	}

	result, err := astar.FindPath(context.Background(), grid, start, goal, astar.WithMaxExpansions(opts.maxExpansions))
	if err != nil {
		return err
	}
	logger.Debug("search finished",
		slog.Bool("found", result.Found),
		slog.Int("expanded", result.ExpandedNodes))

	out := cmd.OutOrStdout()
	fmt.Fprint(out, gridio.RenderText(grid, start, goal, result.Path))
	message := ""
	if result.Found {
		fmt.Fprintf(out, "path: %s\nsteps: %d\n", gridio.FormatPath(result.Path), result.Steps())
	} else {
		message = "No path found."
		fmt.Fprintln(out, "no path found")
	}

	if opts.htmlOut != "" {
		f, err := os.Create(opts.htmlOut)
		if err != nil {
			return fmt.Errorf("create html: %w", err)
		}
		defer f.Close()
		if err := gridio.WriteHTML(f, grid, start, goal, result.Path, message); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		logger.Info("wrote html", slog.String("file", opts.htmlOut))
	}
	return nil
}
