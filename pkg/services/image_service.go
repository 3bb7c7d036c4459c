package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type ImageAnalyzer interface {
	AnalyzeImage(ctx context.Context, image []byte, prompt string) string
}

type imageService struct {
	uploader     FileUploader
	analyzer     ImageAnalyzer
	messagesRepo MessagesRepository
}

func NewImageService(
	uploader FileUploader,
	analyzer ImageAnalyzer,
	messagesRepo MessagesRepository,
) *imageService {
	return &imageService{
		uploader:     uploader,
		analyzer:     analyzer,
		messagesRepo: messagesRepo,
	}
}

// AnalyzePrescription uploads the image, records it as a user turn, and
// records the vision summary as the assistant turn. The summary always comes
// from the vision capability; the chat capability is never a substitute.
func (i *imageService) AnalyzePrescription(ctx context.Context, userID, filename string, image []byte, contentType string) (string, string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := fmt.Sprintf("user_uploads/%s/%d-%s%s", userID, time.Now().Unix(), uuid.NewString(), ext)

	imageURL, err := i.uploader.Upload(ctx, path, image, contentType)
	if err != nil {
		return "", "", fmt.Errorf("uploading image: %w", err)
	}

	slog.InfoContext(ctx, "Prescription image uploaded", "userID", userID, "url", imageURL)

	if _, err := i.messagesRepo.Add(ctx, domain.Message{
		UserID:    userID,
		Role:      domain.RoleUser,
		Content:   "Uploaded an image: " + filename,
		Timestamp: time.Now(),
		ImageURL:  imageURL,
	}); err != nil {
		return "", "", fmt.Errorf("saving image message: %w", err)
	}

	summary := i.analyzer.AnalyzeImage(ctx, image, "")

	if _, err := i.messagesRepo.Add(ctx, domain.Message{
		UserID:    userID,
		Role:      domain.RoleAssistant,
		Content:   summary,
		Timestamp: time.Now(),
	}); err != nil {
		return "", "", fmt.Errorf("saving analysis message: %w", err)
	}

	return summary, imageURL, nil
}
