package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

const maxUploadSize = 25 << 20 // 25 MB

type VoiceService interface {
	ConverseFromAudio(ctx context.Context, userID string, audio []byte, filename string) (string, string, string, error)
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type voice struct {
	service VoiceService
	writer  response.JSONResponseWriter
}

func NewVoice(service VoiceService) *voice {
	return &voice{service: service}
}

type voiceResponse struct {
	Text     string `json:"text"`
	Reply    string `json:"reply"`
	AudioURL string `json:"audio_url,omitempty"`
}

func (h *voice) Converse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "user_id is required.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Audio file is required.")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Failed to read audio file.")
		return
	}

	text, reply, audioURL, err := h.service.ConverseFromAudio(r.Context(), userID, audio, header.Filename)
	if err != nil {
		slog.ErrorContext(r.Context(), "Processing voice turn", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to process voice message.")
		return
	}

	h.writer.WriteSuccessResponse(w, voiceResponse{Text: text, Reply: reply, AudioURL: audioURL})
}

// Speak streams synthesized speech for the text query parameter.
func (h *voice) Speak(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "text parameter is missing or empty.")
		return
	}

	audio, err := h.service.Synthesize(r.Context(), text)
	if err != nil {
		slog.ErrorContext(r.Context(), "Synthesizing speech", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to generate TTS audio.")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	if _, err := w.Write(audio); err != nil {
		slog.ErrorContext(r.Context(), "Writing audio response", logger.Err(err))
	}
}
