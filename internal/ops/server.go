package ops

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"nuclight.org/votebot/internal/poll"
	"nuclight.org/votebot/internal/storage"
)

// PollLister exposes the currently open polls; implemented by the poll
// controller.
type PollLister interface {
	Snapshot() []poll.Snapshot
}

// HistoryReader reads stored poll history; implemented by the storage layer.
type HistoryReader interface {
	Recent(chatID int64, limit int) ([]storage.HistoryEntry, error)
}

// Server is the operational HTTP endpoint: liveness plus a snapshot of the
// open polls, on a side port away from the chat surface.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

func New(addr string, polls PollLister, history HistoryReader, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/polls", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(polls.Snapshot()); err != nil {
			logger.Error("failed to encode poll snapshot", "error", err)
		}
	})

	r.Get("/history", func(w http.ResponseWriter, req *http.Request) {
		chatID, err := strconv.ParseInt(req.URL.Query().Get("chat_id"), 10, 64)
		if err != nil {
			http.Error(w, "chat_id query parameter is required", http.StatusBadRequest)
			return
		}
		limit := 20
		if raw := req.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 1 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
		}

		entries, err := history.Recent(chatID, limit)
		if err != nil {
			logger.Error("failed to read poll history", "chat_id", chatID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []storage.HistoryEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logger.Error("failed to encode poll history", "error", err)
		}
	})

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("ops server started", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
