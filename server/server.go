// Package server exposes the proceedings catalog over a local HTTP API.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kaitj/nmind-proceedings/contract"
	"github.com/kaitj/nmind-proceedings/internal/logging"
)

// Config configures the API server.
type Config struct {
	Addr       string // default: 127.0.0.1:4300
	CORSOrigin string // default: *
	Catalog    contract.Catalog
	Logger     logging.Logger
}

// Server serves the catalog API.
type Server struct {
	cfg      Config
	catalog  contract.Catalog
	logger   logging.Logger
	metrics  *metrics
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}

	srv  *http.Server
	addr net.Addr
}

// New creates a Server with the given configuration.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:4300"
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	s := &Server{
		cfg:     cfg,
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
		metrics: newMetrics(),
		conns:   make(map[*websocket.Conn]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.checkOrigin,
	}
	return s
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/libraries", s.handleListLibraries)
	mux.HandleFunc("GET /api/libraries/{name}", s.handleGetLibrary)
	mux.HandleFunc("GET /api/libraries/{name}/links/{text}", s.handleLibraryLink)
	mux.HandleFunc("GET /api/schemas", s.handleListSchemas)
	mux.HandleFunc("GET /api/schemas/{version}", s.handleGetSchema)
	mux.HandleFunc("GET /api/search/live", s.handleLiveSearch)
	mux.Handle("GET /metrics", s.metrics.handler())

	return requestIDMiddleware(s.instrument(s.corsMiddleware(mux)))
}

// Start starts the server and blocks until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("binding to %s: %w", s.cfg.Addr, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	s.logger.Info("serving catalog api", map[string]any{"addr": ln.Addr().String()})

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown error", map[string]any{"error": err})
		}
		s.closeLiveConns()
	}()

	if err := s.srv.Serve(ln); err != http.ErrServerClosed {
		return err
	}
	<-done
	return nil
}

// Addr returns the bound listener address once Start is running, or nil.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// corsMiddleware adds CORS headers.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.cfg.CORSOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin applies the CORS origin to websocket upgrades.
func (s *Server) checkOrigin(r *http.Request) bool {
	if s.cfg.CORSOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.cfg.CORSOrigin
}
