package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nourivox/nourivox-backend/pkg/domain"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

type FileUploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type voiceService struct {
	transcriber Transcriber
	synthesizer SpeechSynthesizer
	uploader    FileUploader
	chatService *chatService
}

func NewVoiceService(
	transcriber Transcriber,
	synthesizer SpeechSynthesizer,
	uploader FileUploader,
	chatService *chatService,
) *voiceService {
	return &voiceService{
		transcriber: transcriber,
		synthesizer: synthesizer,
		uploader:    uploader,
		chatService: chatService,
	}
}

// ConverseFromAudio transcribes the audio and runs a regular chat turn with
// the transcript as the utterance. When speech synthesis is available the
// reply is rendered to audio, uploaded, and returned as a public URL; a
// missing or failing synthesizer only degrades the response.
func (v *voiceService) ConverseFromAudio(ctx context.Context, userID string, audio []byte, filename string) (string, string, string, error) {
	text, err := v.transcriber.Transcribe(ctx, audio, filename)
	if err != nil {
		return "", "", "", fmt.Errorf("transcribing audio: %w", err)
	}

	slog.InfoContext(ctx, "Voice message transcribed", "userID", userID, "textLength", len(text))

	reply, _, err := v.chatService.Converse(ctx, userID, text)
	if err != nil {
		return "", "", "", err
	}

	audioURL := v.synthesizeToURL(ctx, userID, reply)

	return text, reply, audioURL, nil
}

// Synthesize renders text to audio bytes for direct download.
func (v *voiceService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return v.synthesizer.Synthesize(ctx, text)
}

func (v *voiceService) synthesizeToURL(ctx context.Context, userID, text string) string {
	audio, err := v.synthesizer.Synthesize(ctx, text)
	if err != nil {
		if !errors.Is(err, domain.ErrNotConfigured) {
			slog.WarnContext(ctx, "Synthesizing reply audio", logger.Err(err))
		}
		return ""
	}

	path := fmt.Sprintf("tts/%s/%d-%s.mp3", userID, time.Now().Unix(), uuid.NewString())
	url, err := v.uploader.Upload(ctx, path, audio, "audio/mpeg")
	if err != nil {
		slog.WarnContext(ctx, "Uploading reply audio", logger.Err(err))
		return ""
	}

	return url
}
