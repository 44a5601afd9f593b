// Package server exposes the comparison engine over HTTP. Authentication is
// external; the caller's identity arrives in the X-User-ID header.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avrek/wb-radar/internal/services/comparator"
)

// Server is the HTTP API server.
type Server struct {
	log  *slog.Logger
	svc  comparator.Interface
	http *http.Server
}

// NewServer creates the API server listening on addr.
func NewServer(log *slog.Logger, svc comparator.Interface, addr string) *Server {
	srv := &Server{log: log, svc: svc}
	srv.http = &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv
}

// Router builds the route table. It is exported so tests can drive the
// handlers without a listening socket.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/groups", s.handleCreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}", s.handleDeleteGroup).Methods(http.MethodDelete)
	api.HandleFunc("/compare/quick", s.handleQuickCompare).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}/comparison", s.handleGetComparison).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}/history", s.handleGetHistory).Methods(http.MethodGet)
	api.HandleFunc("/users/stats", s.handleUserStats).Methods(http.MethodGet)

	return router
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.log.Info("HTTP API server is starting...", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("HTTP API server is stopping...")
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	return nil
}
