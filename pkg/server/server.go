package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/proxy"
	"the-savior/edge/pkg/proxy/handlers"
	"the-savior/edge/pkg/proxy/middleware"
	"the-savior/edge/pkg/telemetry/tracing"
)

// MsgNotFound is the body of requests to unknown paths.
const MsgNotFound = "요청한 경로를 찾을 수 없습니다."

// Server serves the edge endpoints.
type Server struct {
	deps         *handlers.Dependencies
	httpServer   *http.Server
	addr         net.Addr
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server. Listener settings are read from the holder
// when Start is called; everything else is read per request.
func NewServer(deps *handlers.Dependencies) *Server {
	return &Server{
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}
}

// Start listens on the configured address and blocks until ctx is done,
// Stop is called, or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	cfg := s.deps.Config.Get().Server

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()
		return fmt.Errorf("failed to listen on %s: %w", cfg.ListenAddress, err)
	}

	s.mu.Lock()
	s.addr = listener.Addr()
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting edge server", "address", listener.Addr().String())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Addr returns the bound address, or nil before Start has listened.
func (s *Server) Addr() net.Addr {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.addr
}

// IsRunning reports whether the server is serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests up to the configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.RLock()
		running, httpServer := s.isRunning, s.httpServer
		s.mu.RUnlock()
		if !running {
			return
		}

		timeout := s.deps.Config.Get().Server.ShutdownTimeout
		slog.Info("initiating graceful shutdown", "timeout", timeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if httpServer != nil {
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("edge server stopped")
	})

	return shutdownErr
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	routes := []string{
		handlers.ChatRoute.Path,
		handlers.KeyCheckRoute.Path,
		handlers.ConfigRoute.Path,
		handlers.HealthRoute.Path,
	}

	mux.Handle(handlers.ChatRoute.Path, handlers.NewChatHandler(s.deps))
	mux.Handle(handlers.KeyCheckRoute.Path, handlers.NewKeyCheckHandler(s.deps))
	mux.Handle(handlers.ConfigRoute.Path, handlers.NewConfigHandler(s.deps))
	mux.Handle(handlers.HealthRoute.Path, handlers.NewHealthHandler(s.deps))

	// The metrics path is fixed at startup like the listen address.
	metricsCfg := s.deps.Config.Get().Telemetry.Metrics
	if metricsCfg.Enabled && s.deps.Metrics != nil {
		path := metricsCfg.Path
		if path == "" {
			path = config.DefaultMetricsPath
		}
		mux.Handle(path, s.deps.Metrics.Handler())
		routes = append(routes, path)
	}

	mux.HandleFunc("/", notFound)

	// Apply middleware chain (innermost first)
	var handler http.Handler = mux

	handler = middleware.MetricsMiddleware(s.deps.Metrics, routes)(handler)
	handler = tracing.HTTPMiddleware(middleware.GetRequestID)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if err := proxy.WriteJSONResponse(w, http.StatusNotFound, map[string]string{"error": MsgNotFound}); err != nil {
		slog.ErrorContext(r.Context(), "failed to write response", "error", err)
	}
}
