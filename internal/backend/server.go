// Package backend implements the reference threat log service.
//
// It owns the authoritative scan history (sqlite) and the extension
// heartbeat registry, and forwards scan submissions to the upstream ML
// inference service. Classification itself never happens here.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/user/phishguard/internal/storage"
	"github.com/user/phishguard/internal/util"
)

// Server is the log service HTTP server.
type Server struct {
	db   *storage.DB
	cfg  *util.Config
	port int
	srv  *http.Server
}

// NewServer creates a new log service server.
func NewServer(db *storage.DB, cfg *util.Config, port int) *Server {
	return &Server{
		db:   db,
		cfg:  cfg,
		port: port,
	}
}

// Start starts the server and blocks until shutdown.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	h := NewHandlers(s.db, s.cfg)

	mux.HandleFunc("/", h.Root)
	mux.HandleFunc("/predict_url", h.PredictURL)
	mux.HandleFunc("/predict_file", h.PredictFile)
	mux.HandleFunc("/logs", h.Logs)
	mux.HandleFunc("/logs/", h.DeleteLog) // DELETE /logs/{id}
	mux.HandleFunc("/api/ping", h.Ping)
	mux.HandleFunc("/api/extension-status", h.ExtensionStatus)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		s.srv.Shutdown(ctx)
	}()

	util.Info("Log service starting on port %d", s.port)

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the server.
func (s *Server) Stop() error {
	if s.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.srv.Shutdown(ctx)
}
