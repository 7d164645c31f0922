// Package view draws grids and search results in a terminal with tcell.
package view

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/gridgen"
	"github.com/pdrpinto/gridastar/internal/gridio"
)

// CellWidth is the number of terminal columns per grid cell.
const CellWidth = 2

const helpText = "[f] find path  [r] new grid  [q] quit"

// Canvas is the part of tcell.Screen the viewer draws on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Viewer holds one scenario and the last search result for it.
type Viewer struct {
	grid   *astar.Grid
	start  astar.Cell
	goal   astar.Cell
	path   []astar.Cell
	status string

	regenerate func() (gridgen.Scenario, error)
}

// New creates a viewer. regenerate may be nil, which disables the r key.
func New(scenario gridgen.Scenario, regenerate func() (gridgen.Scenario, error)) *Viewer {
	v := &Viewer{regenerate: regenerate}
	v.load(scenario)
	return v
}

func (v *Viewer) load(scenario gridgen.Scenario) {
	v.grid = scenario.Grid
	v.start = scenario.Start
	v.goal = scenario.Goal
	v.path = nil
	v.status = helpText
}

func (v *Viewer) Status() string      { return v.status }
func (v *Viewer) Path() []astar.Cell { return v.path }

// CellStyle returns the style used to paint one cell.
func CellStyle(kind gridio.Kind, label int) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.ColorBlack).
		Background(tcell.GetColor(gridio.ColorName(kind, label)))
}

// Draw paints the grid with the status line underneath.
func (v *Viewer) Draw(canvas Canvas) {
	marks := gridio.NewMarks(v.start, v.goal, v.path)
	for r := 0; r < v.grid.Rows(); r++ {
		for c := 0; c < v.grid.Cols(); c++ {
			cell := astar.Cell{Row: r, Col: c}
			kind := marks.Classify(v.grid, cell)
			style := CellStyle(kind, v.grid.Label(cell))
			ch := ' '
			if kind == gridio.KindPath {
				ch = 'X'
			}
			canvas.SetContent(c*CellWidth, r, ch, nil, style)
			for i := 1; i < CellWidth; i++ {
				canvas.SetContent(c*CellWidth+i, r, ' ', nil, style)
			}
		}
	}

	y := v.grid.Rows() + 1
	x := 0
	for _, ch := range v.status {
		canvas.SetContent(x, y, ch, nil, tcell.StyleDefault)
		x++
	}
	for ; x < v.grid.Cols()*CellWidth; x++ {
		canvas.SetContent(x, y, ' ', nil, tcell.StyleDefault)
	}
}

// FindPath runs the search and records the outcome in the status line.
func (v *Viewer) FindPath(ctx context.Context) {
	result, err := astar.FindPath(ctx, v.grid, v.start, v.goal)
	switch {
	case err != nil:
		v.path = nil
		v.status = "Error: " + err.Error()
	case !result.Found:
		v.path = nil
		v.status = "No path found."
	default:
		v.path = result.Path
		v.status = fmt.Sprintf("Path: %d steps, %d cells expanded", result.Steps(), result.ExpandedNodes)
	}
}

// handle applies one key press and reports whether the viewer should quit.
func (v *Viewer) handle(ctx context.Context, key tcell.Key, ch rune) bool {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		return true
	case key == tcell.KeyEnter:
		v.FindPath(ctx)
	case key == tcell.KeyRune:
		switch ch {
		case 'q':
			return true
		case 'f':
			v.FindPath(ctx)
		case 'r':
			if v.regenerate == nil {
				v.status = "Regenerate not available for this grid."
				return false
			}
			scenario, err := v.regenerate()
			if err != nil {
				v.status = "Error: " + err.Error()
				return false
			}
			v.load(scenario)
		}
	}
	return false
}

// Run takes over screen until the user quits or ctx is done. The caller
// owns screen initialisation; Run calls Fini on the way out.
func Run(ctx context.Context, screen tcell.Screen, v *Viewer) error {
	if screen == nil {
		return errors.New("view: nil screen")
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	screen.Clear()
	v.Draw(screen)
	screen.Show()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				if v.handle(ctx, ev.Key(), ev.Rune()) {
					return nil
				}
			}
			screen.Clear()
			v.Draw(screen)
			screen.Show()
		}
	}
}
