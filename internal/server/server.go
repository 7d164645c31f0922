// Package server exposes path finding over HTTP with gin.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// Config holds the HTTP server settings. Zero values pick the defaults below.
type Config struct {
	Addr          string
	AllowOrigin   string
	SearchTimeout time.Duration
	MaxCells      int
	MaxExpansions int
	Workers       int
	Logger        *slog.Logger
}

const (
	DefaultAddr          = ":8080"
	DefaultSearchTimeout = 5 * time.Second
	DefaultMaxCells      = 1 << 20
	maxRandomSide        = 200
)

func (cfg Config) withDefaults() Config {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = DefaultSearchTimeout
	}
	if cfg.MaxCells <= 0 {
		cfg.MaxCells = DefaultMaxCells
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

type Server struct {
	cfg    Config
	router *gin.Engine
}

func New(cfg Config) *Server {
	cfg = cfg.withDefaults()
	s := &Server{cfg: cfg}
	s.router = s.setupRouter()
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.cfg.Logger))
	router.Use(corsMiddleware(s.cfg.AllowOrigin))
	router.Use(brotliCompression(brotli.DefaultCompression))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/path", s.handlePath)
	api.POST("/paths", s.handlePaths)
	api.POST("/render", s.handleRender)
	api.GET("/grid/random", s.handleRandomGrid)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", slog.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.cfg.Logger.Info("server stopped")
	return nil
}
