package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/ironsheep/math-solver/internal/solver"
	"github.com/ironsheep/math-solver/internal/web"
)

// DefaultMaxUploadBytes bounds a /solve request body when Config leaves it
// unset.
const DefaultMaxUploadBytes = 10 << 20

// Solver is what the /solve and /healthz handlers need.
type Solver interface {
	Solve(ctx context.Context, image []byte) (*solver.Result, error)
	Engine() solver.EngineInfo
}

// Config controls a Server.
type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// Version is reported by /healthz.
	Version string

	// MaxUploadBytes bounds a /solve request body.
	MaxUploadBytes int64

	// ShutdownTimeout bounds graceful shutdown in Run.
	ShutdownTimeout time.Duration

	// Page configures the rendered index page.
	Page web.PageConfig

	// Debug logs every solved expression.
	Debug bool
}

// Server serves the page and the solve API.
type Server struct {
	cfg    Config
	solver Solver
	page   *web.Page
	mux    *http.ServeMux
}

// New builds a server around s. The index page is rendered here so template
// errors surface at startup.
func New(cfg Config, s Solver) (*Server, error) {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	page, err := web.NewPage(cfg.Page)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	srv := &Server{
		cfg:    cfg,
		solver: s,
		page:   page,
		mux:    http.NewServeMux(),
	}
	srv.routes()
	return srv, nil
}

func (s *Server) routes() {
	s.mux.Handle("GET /{$}", s.page)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", web.Static()))
	s.mux.HandleFunc("POST /solve", s.handleSolve)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run listens on Config.Addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpSrv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Math solver listening on %s", ln.Addr())
		errCh <- httpSrv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
