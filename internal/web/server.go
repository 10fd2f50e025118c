// Package web provides the dashboard front-end.
//
// The dashboard is one of two independent consumers of the remote threat
// log (the popup is the other). It owns its own polling loop and local
// snapshot; there is no shared state with the popup beyond the remote
// service itself.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/user/phishguard/internal/client"
	"github.com/user/phishguard/internal/heartbeat"
	"github.com/user/phishguard/internal/history"
	"github.com/user/phishguard/internal/poll"
	"github.com/user/phishguard/internal/util"
)

// Server is the dashboard web server.
type Server struct {
	cfg    *util.Config
	port   int
	srv    *http.Server
	cancel context.CancelFunc
}

// NewServer creates a new dashboard server.
func NewServer(cfg *util.Config, port int) *Server {
	return &Server{
		cfg:  cfg,
		port: port,
	}
}

// Start starts the dashboard and its polling loop, blocking until
// shutdown.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	api := client.NewClient(s.cfg.APIBaseURL, s.cfg.APIKey, s.cfg.RequestTimeout, s.cfg.MaxFileSize)
	store := history.NewStore(api)
	monitor := heartbeat.NewMonitor(api)

	poller := poll.NewPoller(ctx)
	poller.AddJob(&poll.Job{
		Name:     "history",
		Interval: s.cfg.HistoryPollInterval,
		Run:      store.Refresh,
	})
	poller.AddJob(&poll.Job{
		Name:     "extension-status",
		Interval: s.cfg.StatusPollInterval,
		Run: func(ctx context.Context) error {
			monitor.Poll(ctx)
			return nil
		},
	})
	go poller.Run()

	h := NewHandlers(store, monitor, poller, s.cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.Dashboard)
	mux.HandleFunc("/api/logs", h.APILogs)
	mux.HandleFunc("/api/logs/", h.APIDeleteLog) // DELETE /api/logs/{id}
	mux.HandleFunc("/api/status", h.APIStatus)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelShutdown()

		cancel()
		s.srv.Shutdown(shutdownCtx)
	}()

	util.Info("Dashboard starting on port %d", s.port)

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop stops the dashboard server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.srv.Shutdown(ctx)
}
