// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":5000"

	// maxBodyBytes caps request bodies (audio uploads included) at 16 MiB.
	maxBodyBytes = 16 << 20

	shutdownTimeout = 10 * time.Second
)

type Config struct {
	Addr string
}

type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

func NewServer(cfg Config, handlers *Handlers) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(limitBody)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze/text", handlers.AnalyzeText)
		r.Post("/analyze/voice", handlers.AnalyzeVoice)
		r.Post("/analyze/video", handlers.AnalyzeVideo)
		r.Post("/recommendations/travel", handlers.TravelRecommendations)
		r.Get("/history", handlers.History)
	})
	router.Get("/healthz", handlers.Health)

	return &Server{
		router:   router,
		handlers: handlers,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("[Server] Listening", slog.String("addr", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("[Server] Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

func limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
