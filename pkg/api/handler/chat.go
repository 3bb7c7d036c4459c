package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
	"github.com/nourivox/nourivox-backend/pkg/domain"
	"github.com/nourivox/nourivox-backend/pkg/logger"
	"github.com/nourivox/nourivox-backend/pkg/render"
)

type ChatService interface {
	Converse(ctx context.Context, userID, message string) (string, []domain.Message, error)
}

type chat struct {
	service ChatService
	writer  response.JSONResponseWriter
}

func NewChat(service ChatService) *chat {
	return &chat{service: service}
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	Reply       string           `json:"reply"`
	ReplyHTML   string           `json:"reply_html"`
	ChatHistory []domain.Message `json:"chat_history"`
}

func (h *chat) Converse(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UserID == "" || req.Message == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "user_id and message are required.")
		return
	}

	reply, history, err := h.service.Converse(r.Context(), req.UserID, req.Message)
	if err != nil {
		slog.ErrorContext(r.Context(), "Processing chat turn", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to process chat message.")
		return
	}

	h.writer.WriteSuccessResponse(w, chatResponse{
		Reply:       reply,
		ReplyHTML:   render.MarkdownToHTML(reply),
		ChatHistory: history,
	})
}
