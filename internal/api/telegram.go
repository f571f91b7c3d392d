package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Webhook receives operator-channel updates. Telegram delivers at least
// once and retries anything that doesn't return 200, so every outcome,
// including unusable payloads, is acknowledged with 200.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	body := http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(body).Decode(&update); err != nil {
		slog.Warn("webhook payload undecodable", "error", err)
		JSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "invalid payload"})
		return
	}

	result := h.correlator.HandleUpdate(update)
	if !result.Matched {
		JSON(w, http.StatusOK, map[string]string{"status": "ignored", "reason": "no correlation"})
		return
	}

	slog.Info("operator reply routed", "user_id", result.UserID, "via", string(result.Via))
	JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"via":     string(result.Via),
		"user_id": result.UserID,
	})
}

// Reply pops the oldest queued operator reply for the user.
func (h *Handler) Reply(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	reply, ok := h.correlator.Drain(userID)
	if !ok {
		JSON(w, http.StatusOK, map[string]interface{}{
			"from_agent": false,
			"message":    nil,
		})
		return
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"from_agent": true,
		"message":    reply.Text,
		"agent":      reply.Agent,
	})
}

// TelegramHealth reports gateway diagnostics.
func (h *Handler) TelegramHealth(w http.ResponseWriter, r *http.Request) {
	if h.gateway == nil {
		JSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}

	info, err := h.gateway.Health()
	if err != nil {
		Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	JSON(w, http.StatusOK, info)
}
