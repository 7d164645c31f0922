package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/gridio"
)

type rootOptions struct {
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "gridastar",
		Short:         "A* path finding on obstacle grids",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newSolveCmd(opts),
		newGenCmd(opts),
		newServeCmd(opts),
		newViewCmd(opts),
	)
	return rootCmd
}

func (o *rootOptions) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// loadGrid reads a text grid, or an HTML table when the file ends in .html.
// "-" reads text from stdin.
func loadGrid(cmd *cobra.Command, path string, obstacle int) (*astar.Grid, error) {
	if path == "-" {
		return gridio.ReadText(cmd.InOrStdin(), obstacle)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return gridio.ReadHTML(f)
	default:
		return gridio.ReadText(f, obstacle)
	}
}
