package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/crosswordpolls/internal/core/ports"
)

type CrosswordHandler struct {
	service ports.CrosswordService
	logger  *slog.Logger
}

func NewCrosswordHandler(service ports.CrosswordService, logger *slog.Logger) *CrosswordHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CrosswordHandler{
		service: service,
		logger:  logger,
	}
}

// ListCrosswords returns every stored record, newest first.
func (h *CrosswordHandler) ListCrosswords(w http.ResponseWriter, r *http.Request) {
	crosswords, err := h.service.ListCrosswords(r.Context())
	if err != nil {
		h.logger.Error("failed to list crosswords", "error", err)
		http.Error(w, "failed to list crosswords", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, crosswords)
}

func (h *CrosswordHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Healthy(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON can only log an encode failure since the status is already sent.
func (h *CrosswordHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
