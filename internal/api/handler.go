// Package api provides the HTTP handlers for the chatbot service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shakauthossain/nh-buddy/internal/chat"
	"github.com/shakauthossain/nh-buddy/internal/handoff"
)

// maxRequestBodySize bounds inbound JSON bodies (1MB).
const maxRequestBodySize = 1 << 20

// HealthReporter reports operator-channel diagnostics.
type HealthReporter interface {
	Health() (map[string]any, error)
}

// Handler serves the chat, session and operator-channel endpoints.
type Handler struct {
	chat       *chat.Service
	correlator *handoff.Correlator
	gateway    HealthReporter // nil when forwarding is not configured
	rebuild    func() error
}

// NewHandler creates a Handler. gateway may be nil.
func NewHandler(chatSvc *chat.Service, correlator *handoff.Correlator, gateway HealthReporter, rebuild func() error) *Handler {
	return &Handler{
		chat:       chatSvc,
		correlator: correlator,
		gateway:    gateway,
		rebuild:    rebuild,
	}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Post("/ask", h.Ask)
	r.Post("/end-agent-session/{userID}", h.EndSession)
	r.Post("/retrain", h.Retrain)

	r.Route("/telegram", func(r chi.Router) {
		r.Post("/webhook", h.Webhook)
		r.Get("/reply/{userID}", h.Reply)
		r.Get("/health", h.TelegramHealth)
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// Root is a liveness greeting.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"message": "ok"})
}

type askRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

// Ask handles one chat message.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		Error(w, http.StatusBadRequest, "query cannot be empty")
		return
	}

	JSON(w, http.StatusOK, h.chat.Ask(r.Context(), req.UserID, req.Query))
}

// EndSession clears all per-user state.
func (h *Handler) EndSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		Error(w, http.StatusBadRequest, "user id is required")
		return
	}

	if err := h.chat.EndSession(r.Context(), userID); err != nil {
		slog.Error("end session failed", "user_id", userID, "error", err)
		Error(w, http.StatusInternalServerError, "failed to end session")
		return
	}

	JSON(w, http.StatusOK, map[string]string{
		"message": "Agent session ended and memory cleared for " + userID,
	})
}

// Retrain rebuilds the FAQ index from the corpus on disk and swaps it in.
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	if err := h.rebuild(); err != nil {
		slog.Error("retrain failed", "error", err)
		Error(w, http.StatusInternalServerError, "failed to rebuild index")
		return
	}
	JSON(w, http.StatusOK, map[string]string{"message": "Chatbot retrained successfully."})
}
