package handler

import (
	"net/http"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
)

type health struct {
	writer response.JSONResponseWriter
}

func NewHealth() *health {
	return &health{}
}

func (h *health) Status(w http.ResponseWriter, r *http.Request) {
	h.writer.WriteSuccessResponse(w, map[string]string{
		"message": "Nourivox AI Health Assistant API is running!",
	})
}
