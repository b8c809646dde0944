// Package web serves the local viewer: session toggles, match status, the
// registered-identity list and the annotated live view.
package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/facewatch/facewatch/internal/config"
	"github.com/facewatch/facewatch/internal/faceapi"
	"github.com/facewatch/facewatch/internal/monitor"
	"github.com/facewatch/facewatch/internal/web/middleware"
)

// Server represents the viewer web server.
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	session    *monitor.Session
	client     *faceapi.Client
}

// NewServer creates a viewer server around an existing session and API client.
func NewServer(cfg *config.Config, session *monitor.Session, client *faceapi.Client) *Server {
	r := chi.NewRouter()

	s := &Server{
		config:  cfg,
		router:  r,
		session: session,
		client:  client,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS())

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// No write timeout: the MJPEG stream stays open for the whole session.
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting viewer on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server and stops the session.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down viewer...")
	s.session.Stop()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
