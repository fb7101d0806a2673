// Package ioweb exposes the question answering pipeline over HTTP.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bikeq/bikeq/pkg/answer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Answerer is the part of answer.Service the server needs.
type Answerer interface {
	Answer(ctx context.Context, question string) (answer.Result, answer.Status)
	Health(ctx context.Context) error
}

// Server serves the pipeline.
type Server struct {
	svc     Answerer
	port    int
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// OptPort sets the listening port. Zero picks any free port.
func OptPort(port int) Option {
	return func(s *Server) {
		if port >= 0 {
			s.port = port
		}
	}
}

// OptTimeout limits the time of one request.
func OptTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Server. By default it listens on port 5000 and gives
// each request 60 seconds.
func New(svc Answerer, opts ...Option) *Server {
	res := &Server{
		svc:     svc,
		port:    5000,
		timeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Router returns the handler with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(s.timeout),
	)

	r.Get("/", s.index)
	r.Post("/query", s.query)
	r.Get("/health", s.health)
	return r
}

// Run serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Router(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: readHeaderTimeout,
	}

	eg.Go(func() error {
		slog.Info("Starting HTTP server", "addr", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return ServerStartError(addr, err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()

		slog.Info("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
