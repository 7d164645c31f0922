package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

var wallGrid = [][]int{
	{0, 0, 2, 0, 0},
	{0, 0, 2, 0, 0},
	{0, 0, 2, 0, 0},
	{0, 0, 2, 0, 0},
	{0, 0, 0, 0, 0},
}

func newTestServer(t *testing.T, cfg Config) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestHandlePath(t *testing.T) {
	handler := newTestServer(t, Config{})

	rec := doJSON(t, handler, http.MethodPost, "/api/path", map[string]any{
		"grid":  wallGrid,
		"start": []int{0, 0},
		"goal":  []int{0, 4},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[PathResponse](t, rec)
	if !resp.Found || resp.Steps != 8 {
		t.Fatalf("Expected 8-step path, got %+v", resp)
	}
	want := []Point{{0, 0}, {1, 1}, {2, 1}, {3, 1}, {4, 2}, {3, 3}, {2, 4}, {1, 4}, {0, 4}}
	if !reflect.DeepEqual(resp.Path, want) {
		t.Errorf("Expected %v, got %v", want, resp.Path)
	}
	if resp.Message != "" {
		t.Errorf("Unexpected message %q", resp.Message)
	}
}

func TestHandlePathOutcomes(t *testing.T) {
	enclosed := [][]int{
		{0, 0, 0},
		{2, 2, 2},
		{0, 0, 0},
	}
	obstacle := 9

	tests := []struct {
		name       string
		cfg        Config
		body       map[string]any
		wantStatus int
		wantFound  bool
		wantErr    string
	}{
		{
			name:       "No path is still OK",
			body:       map[string]any{"grid": enclosed, "start": []int{0, 0}, "goal": []int{2, 2}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Custom obstacle",
			body:       map[string]any{"grid": enclosed, "obstacle": obstacle, "start": []int{0, 0}, "goal": []int{2, 2}},
			wantStatus: http.StatusOK,
			wantFound:  true,
		},
		{
			name:       "Blocked start",
			body:       map[string]any{"grid": enclosed, "start": []int{1, 0}, "goal": []int{2, 2}},
			wantStatus: http.StatusBadRequest,
			wantErr:    "obstacle",
		},
		{
			name:       "Out of bounds goal",
			body:       map[string]any{"grid": enclosed, "start": []int{0, 0}, "goal": []int{3, 0}},
			wantStatus: http.StatusBadRequest,
			wantErr:    "out of bounds",
		},
		{
			name:       "Ragged grid",
			body:       map[string]any{"grid": [][]int{{0, 0}, {0}}, "start": []int{0, 0}, "goal": []int{0, 1}},
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid grid",
		},
		{
			name:       "Missing grid",
			body:       map[string]any{"start": []int{0, 0}, "goal": []int{0, 1}},
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
		{
			name:       "Budget exceeded",
			body:       map[string]any{"grid": wallGrid, "start": []int{0, 0}, "goal": []int{0, 4}, "maxExpansions": 2},
			wantStatus: http.StatusUnprocessableEntity,
			wantErr:    "budget",
		},
		{
			name:       "Server budget caps request",
			cfg:        Config{MaxExpansions: 2},
			body:       map[string]any{"grid": wallGrid, "start": []int{0, 0}, "goal": []int{0, 4}, "maxExpansions": 1000},
			wantStatus: http.StatusUnprocessableEntity,
			wantErr:    "budget",
		},
		{
			name:       "Grid too large",
			cfg:        Config{MaxCells: 4},
			body:       map[string]any{"grid": wallGrid, "start": []int{0, 0}, "goal": []int{0, 4}},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantErr:    "too large",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, tt.cfg)
			rec := doJSON(t, handler, http.MethodPost, "/api/path", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantErr != "" {
				resp := decode[ErrorResponse](t, rec)
				if !strings.Contains(resp.Error, tt.wantErr) {
					t.Errorf("Expected error containing %q, got %q", tt.wantErr, resp.Error)
				}
				return
			}
			resp := decode[PathResponse](t, rec)
			if resp.Found != tt.wantFound {
				t.Fatalf("Expected found=%v, got %+v", tt.wantFound, resp)
			}
			if !resp.Found && (resp.Message != noPathMessage || resp.Steps != -1 || resp.Path != nil) {
				t.Errorf("Unexpected not-found response %+v", resp)
			}
		})
	}
}

func TestHandlePaths(t *testing.T) {
	handler := newTestServer(t, Config{Workers: 2})
	rec := doJSON(t, handler, http.MethodPost, "/api/paths", map[string]any{
		"grid": wallGrid,
		"queries": []map[string]any{
			{"start": []int{0, 0}, "goal": []int{0, 4}},
			{"start": []int{0, 0}, "goal": []int{0, 2}},
			{"start": []int{4, 4}, "goal": []int{4, 4}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[PathsResponse](t, rec)
	if len(resp.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(resp.Results))
	}
	if r := resp.Results[0]; !r.Found || r.Steps != 8 || r.Error != "" {
		t.Errorf("Query 0: %+v", r)
	}
	if r := resp.Results[1]; r.Found || !strings.Contains(r.Error, "obstacle") {
		t.Errorf("Query 1: %+v", r)
	}
	if r := resp.Results[2]; !r.Found || r.Steps != 0 || r.Goal != (Point{4, 4}) {
		t.Errorf("Query 2: %+v", r)
	}
}

func TestHandleRender(t *testing.T) {
	handler := newTestServer(t, Config{})
	rec := doJSON(t, handler, http.MethodPost, "/api/render", map[string]any{
		"grid":  [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		"start": []int{0, 0},
		"goal":  []int{2, 2},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected text/html, got %q", ct)
	}
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("goquery: %v", err)
	}
	if got := doc.Find("td.path").Length(); got != 1 {
		t.Errorf("Expected 1 path cell, got %d", got)
	}
	if _, ok := doc.Find(`td[data-row="1"][data-col="1"]`).Attr("class"); !ok {
		t.Errorf("Missing center cell")
	}
}

func TestHandleRandomGrid(t *testing.T) {
	handler := newTestServer(t, Config{})

	rec := doJSON(t, handler, http.MethodGet, "/api/grid/random?rows=6&cols=9&seed=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[RandomGridResponse](t, rec)
	if len(resp.Grid) != 6 || len(resp.Grid[0]) != 9 || resp.Seed != 5 {
		t.Fatalf("Unexpected grid shape or seed: %dx%d seed %d", len(resp.Grid), len(resp.Grid[0]), resp.Seed)
	}
	for _, p := range []Point{resp.Start, resp.Goal} {
		if resp.Grid[p[0]][p[1]] == resp.Obstacle {
			t.Errorf("Endpoint %v is blocked", p)
		}
	}

	again := decode[RandomGridResponse](t, doJSON(t, handler, http.MethodGet, "/api/grid/random?rows=6&cols=9&seed=5", nil))
	if !reflect.DeepEqual(again, resp) {
		t.Errorf("Same seed gave a different grid")
	}

	for _, query := range []string{"rows=0", "cols=1000", "rows=abc", "seed=x"} {
		if rec := doJSON(t, handler, http.MethodGet, "/api/grid/random?"+query, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestBrotliCompression(t *testing.T) {
	handler := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Accept-Encoding", "gzip, br")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Encoding"); got != "br" {
		t.Fatalf("Expected br encoding, got %q", got)
	}
	body, err := io.ReadAll(brotli.NewReader(rec.Body))
	if err != nil {
		t.Fatalf("brotli decode: %v", err)
	}
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("Unexpected body %q", body)
	}

	plain := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	if plain.Header().Get("Content-Encoding") != "" {
		t.Errorf("Unexpected encoding without Accept-Encoding")
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestServer(t, Config{AllowOrigin: "http://localhost:3000"})
	rec := doJSON(t, handler, http.MethodOptions, "/api/path", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Unexpected origin %q", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Addr != DefaultAddr || cfg.SearchTimeout != DefaultSearchTimeout || cfg.MaxCells != DefaultMaxCells {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	cfg = Config{Addr: ":9000", SearchTimeout: time.Second}.withDefaults()
	if cfg.Addr != ":9000" || cfg.SearchTimeout != time.Second {
		t.Errorf("Defaults overwrote explicit values: %+v", cfg)
	}
}
