package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

type ImageService interface {
	AnalyzePrescription(ctx context.Context, userID, filename string, image []byte, contentType string) (string, string, error)
}

type image struct {
	service ImageService
	writer  response.JSONResponseWriter
}

func NewImage(service ImageService) *image {
	return &image{service: service}
}

type imageUploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"image_url,omitempty"`
}

func (h *image) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid multipart form.")
		return
	}

	userID := r.FormValue("user_id")
	if userID == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "user_id is required.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Image file is required.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Only image files are allowed.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Failed to read image file.")
		return
	}

	summary, imageURL, err := h.service.AnalyzePrescription(r.Context(), userID, header.Filename, data, contentType)
	if err != nil {
		slog.ErrorContext(r.Context(), "Processing prescription image", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to process image.")
		return
	}

	h.writer.WriteSuccessResponse(w, imageUploadResponse{Message: summary, ImageURL: imageURL})
}
