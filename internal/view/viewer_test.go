package view

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/gridgen"
	"github.com/pdrpinto/gridastar/internal/gridio"
)

type point struct{ x, y int }

type cell struct {
	ch    rune
	style tcell.Style
}

type recordingCanvas map[point]cell

func (c recordingCanvas) SetContent(x, y int, primary rune, combining []rune, style tcell.Style) {
	c[point{x, y}] = cell{ch: primary, style: style}
}

func (c recordingCanvas) line(y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		ch := c[point{x, y}].ch
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return strings.TrimRight(sb.String(), " ")
}

func scenario(t *testing.T, labels [][]int, start, goal astar.Cell) gridgen.Scenario {
	t.Helper()
	grid, err := astar.NewGrid(labels, astar.DefaultObstacle)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return gridgen.Scenario{Grid: grid, Start: start, Goal: goal}
}

func TestDrawAfterFindPath(t *testing.T) {
	v := New(scenario(t, [][]int{
		{0, 1, 0},
		{2, 0, 0},
		{0, 0, 0},
	}, astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 2, Col: 2}), nil)

	if quit := v.handle(context.Background(), tcell.KeyRune, 'f'); quit {
		t.Fatalf("f should not quit")
	}
	if !strings.HasPrefix(v.Status(), "Path: 2 steps") {
		t.Fatalf("Unexpected status %q", v.Status())
	}

	canvas := recordingCanvas{}
	v.Draw(canvas)

	tests := []struct {
		name  string
		at    point
		ch    rune
		style tcell.Style
	}{
		{"Start", point{0, 0}, ' ', CellStyle(gridio.KindStart, 0)},
		{"Rough ground", point{2, 0}, ' ', CellStyle(gridio.KindOpen, 1)},
		{"Obstacle", point{1, 1}, ' ', CellStyle(gridio.KindObstacle, 2)},
		{"Path", point{2, 1}, 'X', CellStyle(gridio.KindPath, 0)},
		{"Path filler", point{3, 1}, ' ', CellStyle(gridio.KindPath, 0)},
		{"Goal", point{4, 2}, ' ', CellStyle(gridio.KindGoal, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canvas[tt.at]
			if got.ch != tt.ch {
				t.Errorf("Expected %q, got %q", tt.ch, got.ch)
			}
			if got.style != tt.style {
				t.Errorf("Expected style to match")
			}
		})
	}

	if got := canvas.line(4, 80); got != v.Status() {
		t.Errorf("Status line %q, want %q", got, v.Status())
	}
}

func TestNoPathMessage(t *testing.T) {
	v := New(scenario(t, [][]int{
		{0, 2, 0},
		{2, 2, 0},
		{0, 0, 0},
	}, astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 2, Col: 2}), nil)

	v.handle(context.Background(), tcell.KeyEnter, 0)
	if v.Status() != "No path found." {
		t.Errorf("Unexpected status %q", v.Status())
	}
	if v.Path() != nil {
		t.Errorf("Expected no path, got %v", v.Path())
	}
}

func TestBlockedEndpointMessage(t *testing.T) {
	v := New(scenario(t, [][]int{{2, 0}}, astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 0, Col: 1}), nil)
	v.FindPath(context.Background())
	if !strings.Contains(v.Status(), "obstacle") {
		t.Errorf("Unexpected status %q", v.Status())
	}
}

func TestRegenerate(t *testing.T) {
	calls := 0
	next := scenario(t, [][]int{{0, 0, 0, 0}}, astar.Cell{Row: 0, Col: 0}, astar.Cell{Row: 0, Col: 3})
	v := New(scenario(t, [][]int{{0, 0}}, astar.Cell{}, astar.Cell{Col: 1}), func() (gridgen.Scenario, error) {
		calls++
		if calls > 1 {
			return gridgen.Scenario{}, errors.New("out of seeds")
		}
		return next, nil
	})
	v.FindPath(context.Background())

	v.handle(context.Background(), tcell.KeyRune, 'r')
	if v.grid != next.Grid || v.Path() != nil || v.Status() != helpText {
		t.Errorf("Regenerate did not reset the viewer")
	}

	v.handle(context.Background(), tcell.KeyRune, 'r')
	if !strings.Contains(v.Status(), "out of seeds") {
		t.Errorf("Unexpected status %q", v.Status())
	}
	if v.grid != next.Grid {
		t.Errorf("Failed regenerate replaced the grid")
	}
}

func TestRegenerateUnavailable(t *testing.T) {
	v := New(scenario(t, [][]int{{0, 0}}, astar.Cell{}, astar.Cell{Col: 1}), nil)
	v.handle(context.Background(), tcell.KeyRune, 'r')
	if !strings.Contains(v.Status(), "not available") {
		t.Errorf("Unexpected status %q", v.Status())
	}
}

func TestQuitKeys(t *testing.T) {
	v := New(scenario(t, [][]int{{0}}, astar.Cell{}, astar.Cell{}), nil)
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		want bool
	}{
		{"q", tcell.KeyRune, 'q', true},
		{"Escape", tcell.KeyEscape, 0, true},
		{"Ctrl-C", tcell.KeyCtrlC, 0, true},
		{"Other rune", tcell.KeyRune, 'x', false},
	}
	for _, tt := range tests {
		if got := v.handle(context.Background(), tt.key, tt.ch); got != tt.want {
			t.Errorf("%s: quit = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(40, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := New(scenario(t, [][]int{{0, 0}}, astar.Cell{}, astar.Cell{Col: 1}), nil)
	if err := Run(ctx, screen, v); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
