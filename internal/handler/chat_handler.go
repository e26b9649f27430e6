package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"foodcourt/internal/chat"
	"foodcourt/internal/model"

	"github.com/rs/zerolog"
)

// ChatHandler handles menu assistant HTTP requests.
type ChatHandler struct {
	assistant *chat.Assistant
	logger    zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(assistant *chat.Assistant, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		assistant: assistant,
		logger:    logger.With().Str("handler", "chat").Logger(),
	}
}

// Chat handles POST /api/chat requests.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeMissingField, "message is required", h.logger)
		return
	}

	reply := h.assistant.Reply(r.Context(), message)
	writeJSON(w, http.StatusOK, model.ChatResponse{Reply: reply})
}
