// Package gridio reads and writes grids as plain text and HTML tables, and
// renders search results for people to look at.
package gridio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	astar "github.com/pdrpinto/gridastar"
)

// ReadText parses one grid row per line with whitespace-separated labels.
// Blank lines and lines starting with '#' are skipped.
func ReadText(r io.Reader, obstacle int) (*astar.Grid, error) {
	var labels [][]int
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		row := make([]int, len(fields))
		for i, field := range fields {
			label, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: label %q", lineNo, astar.ErrInvalidGrid, field)
			}
			row[i] = label
		}
		labels = append(labels, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	return astar.NewGrid(labels, obstacle)
}

// WriteText writes grid in the format ReadText accepts.
func WriteText(w io.Writer, grid *astar.Grid) error {
	bw := bufio.NewWriter(w)
	for _, row := range grid.Labels() {
		for c, label := range row {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(label))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ParseCell parses "row,col".
func ParseCell(s string) (astar.Cell, error) {
	rowText, colText, ok := strings.Cut(s, ",")
	if !ok {
		return astar.Cell{}, fmt.Errorf("cell %q: want row,col", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowText))
	if err != nil {
		return astar.Cell{}, fmt.Errorf("cell %q: row: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(colText))
	if err != nil {
		return astar.Cell{}, fmt.Errorf("cell %q: col: %w", s, err)
	}
	return astar.Cell{Row: row, Col: col}, nil
}

// RenderText draws the grid one character per cell: S start, G goal, X path,
// '#' obstacle, otherwise the label's last digit.
func RenderText(grid *astar.Grid, start, goal astar.Cell, path []astar.Cell) string {
	marks := NewMarks(start, goal, path)
	var sb strings.Builder
	sb.Grow(grid.Rows() * (grid.Cols() + 1))
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			cell := astar.Cell{Row: r, Col: c}
			switch marks.Classify(grid, cell) {
			case KindStart:
				sb.WriteByte('S')
			case KindGoal:
				sb.WriteByte('G')
			case KindPath:
				sb.WriteByte('X')
			case KindObstacle:
				sb.WriteByte('#')
			default:
				sb.WriteByte(byte('0' + grid.Label(cell)%10))
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatPath renders a path as "(r,c) -> (r,c) -> ...".
func FormatPath(path []astar.Cell) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " -> ")
}
