package gridio

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	astar "github.com/pdrpinto/gridastar"
)

type htmlCell struct {
	Row, Col int
	Label    int
	Class    string
	Color    string
	Text     string
}

type htmlPage struct {
	Rows, Cols int
	Obstacle   int
	Message    string
	Cells      [][]htmlCell
}

var kindClass = map[Kind]string{
	KindOpen:     "open",
	KindObstacle: "obstacle",
	KindPath:     "path",
	KindStart:    "start",
	KindGoal:     "goal",
}

var pageTemplate = template.Must(template.New("grid").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Pathfinder</title>
<style>
table.grid { border-collapse: separate; border-spacing: 1px; }
table.grid td { width: 24px; height: 24px; border: 1px solid black; text-align: center; }
</style>
</head>
<body>
<table class="grid" data-rows="{{.Rows}}" data-cols="{{.Cols}}" data-obstacle="{{.Obstacle}}">
{{- range .Cells}}
<tr>{{range .}}<td class="{{.Class}}" data-row="{{.Row}}" data-col="{{.Col}}" data-label="{{.Label}}" style="background-color: {{.Color}}">{{.Text}}</td>{{end}}</tr>
{{- end}}
</table>
{{- if .Message}}
<p class="message">{{.Message}}</p>
{{- end}}
</body>
</html>
`))

// WriteHTML renders the grid as a coloured table. Path cells are marked "X".
// A nil path with message set renders the message under the table.
func WriteHTML(w io.Writer, grid *astar.Grid, start, goal astar.Cell, path []astar.Cell, message string) error {
	marks := NewMarks(start, goal, path)
	page := htmlPage{
		Rows:     grid.Rows(),
		Cols:     grid.Cols(),
		Obstacle: grid.Obstacle(),
		Message:  message,
		Cells:    make([][]htmlCell, grid.Rows()),
	}
	for r := range page.Cells {
		page.Cells[r] = make([]htmlCell, grid.Cols())
		for c := range page.Cells[r] {
			cell := astar.Cell{Row: r, Col: c}
			kind := marks.Classify(grid, cell)
			label := grid.Label(cell)
			hc := htmlCell{
				Row:   r,
				Col:   c,
				Label: label,
				Class: kindClass[kind],
				Color: ColorName(kind, label),
			}
			if kind == KindPath {
				hc.Text = "X"
			}
			page.Cells[r][c] = hc
		}
	}
	return pageTemplate.Execute(w, page)
}

// ReadHTML parses the first table.grid in r back into a Grid. The obstacle
// sentinel comes from the table's data-obstacle attribute.
func ReadHTML(r io.Reader) (*astar.Grid, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	table := doc.Find("table.grid").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: no table.grid element", astar.ErrInvalidGrid)
	}

	obstacle := astar.DefaultObstacle
	if v, ok := table.Attr("data-obstacle"); ok {
		if obstacle, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("%w: data-obstacle %q", astar.ErrInvalidGrid, v)
		}
	}

	var labels [][]int
	var parseErr error
	table.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		var row []int
		tr.Find("td").EachWithBreak(func(j int, td *goquery.Selection) bool {
			v, ok := td.Attr("data-label")
			if !ok {
				parseErr = fmt.Errorf("%w: row %d cell %d has no data-label", astar.ErrInvalidGrid, i, j)
				return false
			}
			label, err := strconv.Atoi(v)
			if err != nil {
				parseErr = fmt.Errorf("%w: row %d cell %d label %q", astar.ErrInvalidGrid, i, j, v)
				return false
			}
			row = append(row, label)
			return true
		})
		if parseErr != nil {
			return false
		}
		labels = append(labels, row)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return astar.NewGrid(labels, obstacle)
}
