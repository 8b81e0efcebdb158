package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/parlor-dev/parlor/internal/config"
	"github.com/parlor-dev/parlor/internal/logger"
	"github.com/parlor-dev/parlor/internal/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	user     service.UserService
	category service.CategoryService
	board    service.BoardService
	thread   service.ThreadService
	post     service.PostService
	health   Pinger
	cfg      *config.Config
}

func New(user service.UserService, category service.CategoryService, board service.BoardService, thread service.ThreadService, post service.PostService, health Pinger, cfg *config.Config) *Handler {
	return &Handler{user, category, board, thread, post, health, cfg}
}

// Health is a liveness probe endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Ready is a readiness probe endpoint. Returns 503 when the store is down.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("database unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
