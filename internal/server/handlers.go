package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	astar "github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/internal/gridgen"
	"github.com/pdrpinto/gridastar/internal/gridio"
)

// Point is a [row, col] pair on the wire.
type Point [2]int

func (p Point) cell() astar.Cell { return astar.Cell{Row: p[0], Col: p[1]} }

func pointOf(c astar.Cell) Point { return Point{c.Row, c.Col} }

type GridRequest struct {
	Grid     [][]int `json:"grid" binding:"required"`
	Obstacle *int    `json:"obstacle"`
}

type PathRequest struct {
	GridRequest
	Start         Point `json:"start"`
	Goal          Point `json:"goal"`
	MaxExpansions int   `json:"maxExpansions"`
}

type PathResponse struct {
	Found         bool    `json:"found"`
	Path          []Point `json:"path"`
	Steps         int     `json:"steps"`
	ExpandedNodes int     `json:"expandedNodes"`
	TimeTakenMs   float64 `json:"timeTakenMs"`
	Message       string  `json:"message,omitempty"`
}

type QueryRequest struct {
	Start Point `json:"start"`
	Goal  Point `json:"goal"`
}

type PathsRequest struct {
	GridRequest
	Queries       []QueryRequest `json:"queries" binding:"required"`
	MaxExpansions int            `json:"maxExpansions"`
}

type QueryResponse struct {
	Start         Point   `json:"start"`
	Goal          Point   `json:"goal"`
	Found         bool    `json:"found"`
	Path          []Point `json:"path"`
	Steps         int     `json:"steps"`
	ExpandedNodes int     `json:"expandedNodes"`
	Error         string  `json:"error,omitempty"`
}

type PathsResponse struct {
	Results     []QueryResponse `json:"results"`
	TimeTakenMs float64         `json:"timeTakenMs"`
}

type RandomGridResponse struct {
	Grid     [][]int `json:"grid"`
	Obstacle int     `json:"obstacle"`
	Start    Point   `json:"start"`
	Goal     Point   `json:"goal"`
	Seed     int64   `json:"seed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const noPathMessage = "no path found"

var errGridTooLarge = errors.New("grid too large")

// statusFor maps a search error to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errGridTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, astar.ErrInvalidGrid),
		errors.Is(err, astar.ErrOutOfBounds),
		errors.Is(err, astar.ErrBlockedEndpoint):
		return http.StatusBadRequest
	case errors.Is(err, astar.ErrBudgetExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), ErrorResponse{Error: err.Error()})
}

func (s *Server) buildGrid(req GridRequest) (*astar.Grid, error) {
	cells := 0
	for _, row := range req.Grid {
		cells += len(row)
	}
	if cells > s.cfg.MaxCells {
		return nil, fmt.Errorf("%w: %d cells, limit %d", errGridTooLarge, cells, s.cfg.MaxCells)
	}
	obstacle := astar.DefaultObstacle
	if req.Obstacle != nil {
		obstacle = *req.Obstacle
	}
	return astar.NewGrid(req.Grid, obstacle)
}

func (s *Server) searchOptions(requested int) []astar.Option {
	limit := requested
	if s.cfg.MaxExpansions > 0 && (limit <= 0 || limit > s.cfg.MaxExpansions) {
		limit = s.cfg.MaxExpansions
	}
	options := []astar.Option{astar.WithMaxExpansions(limit)}
	if s.cfg.Workers > 0 {
		options = append(options, astar.WithWorkers(s.cfg.Workers))
	}
	return options
}

func pathPoints(path []astar.Cell) []Point {
	if path == nil {
		return nil
	}
	points := make([]Point, len(path))
	for i, c := range path {
		points[i] = pointOf(c)
	}
	return points
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func (s *Server) findPath(c *gin.Context, req PathRequest) (*astar.Grid, astar.Result[astar.Cell], error) {
	grid, err := s.buildGrid(req.GridRequest)
	if err != nil {
		return nil, astar.Result[astar.Cell]{}, err
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.SearchTimeout)
	defer cancel()
	result, err := astar.FindPath(ctx, grid, req.Start.cell(), req.Goal.cell(), s.searchOptions(req.MaxExpansions)...)
	return grid, result, err
}

func (s *Server) handlePath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	startTime := time.Now()
	_, result, err := s.findPath(c, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := PathResponse{
		Found:         result.Found,
		Path:          pathPoints(result.Path),
		Steps:         result.Steps(),
		ExpandedNodes: result.ExpandedNodes,
		TimeTakenMs:   elapsedMs(startTime),
	}
	if !result.Found {
		resp.Message = noPathMessage
		s.cfg.Logger.Info(noPathMessage,
			slog.Any("start", req.Start),
			slog.Any("goal", req.Goal),
			slog.Int("expanded", result.ExpandedNodes))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handlePaths(c *gin.Context) {
	var req PathsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}
	grid, err := s.buildGrid(req.GridRequest)
	if err != nil {
		abortWithError(c, err)
		return
	}

	queries := make([]astar.Query, len(req.Queries))
	for i, q := range req.Queries {
		queries[i] = astar.Query{Start: q.Start.cell(), Goal: q.Goal.cell()}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.SearchTimeout)
	defer cancel()

	startTime := time.Now()
	results := astar.FindPaths(ctx, grid, queries, s.searchOptions(req.MaxExpansions)...)

	resp := PathsResponse{Results: make([]QueryResponse, len(results))}
	for i, qr := range results {
		out := QueryResponse{
			Start:         req.Queries[i].Start,
			Goal:          req.Queries[i].Goal,
			Found:         qr.Result.Found,
			Path:          pathPoints(qr.Result.Path),
			Steps:         qr.Result.Steps(),
			ExpandedNodes: qr.Result.ExpandedNodes,
		}
		if qr.Err != nil {
			out.Error = qr.Err.Error()
		}
		resp.Results[i] = out
	}
	resp.TimeTakenMs = elapsedMs(startTime)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleRender(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	grid, result, err := s.findPath(c, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	message := ""
	if !result.Found {
		message = "No path found."
	}
	var buf bytes.Buffer
	if err := gridio.WriteHTML(&buf, grid, req.Start.cell(), req.Goal.cell(), result.Path, message); err != nil {
		abortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func queryInt(c *gin.Context, key string, fallback, lo, hi int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer in [%d,%d]", key, lo, hi)
	}
	return v, nil
}

func (s *Server) handleRandomGrid(c *gin.Context) {
	rows, err := queryInt(c, "rows", gridgen.DefaultSize, 1, maxRandomSide)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	cols, err := queryInt(c, "cols", gridgen.DefaultSize, 1, maxRandomSide)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	var seed int64
	if raw := c.Query("seed"); raw != "" {
		if seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: "seed must be an integer"})
			return
		}
	}

	scenario, err := gridgen.NewScenario(gridgen.Config{Rows: rows, Cols: cols, Seed: seed})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, RandomGridResponse{
		Grid:     scenario.Grid.Labels(),
		Obstacle: scenario.Grid.Obstacle(),
		Start:    pointOf(scenario.Start),
		Goal:     pointOf(scenario.Goal),
		Seed:     scenario.Seed,
	})
}
