package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/nourivox/nourivox-backend/pkg/domain"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

// A provider joins a capability chain only when its credentials are configured
// at process start; an absent provider is never attempted and never counts as
// a failure.

type ChatProvider interface {
	Name() string
	GenerateReply(ctx context.Context, utterance string, history []domain.Message) (string, error)
}

type VisionProvider interface {
	Name() string
	AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error)
}

type Transcriber interface {
	Name() string
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

type SpeechSynthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

const (
	FallbackReply      = "Sorry, I couldn't process your request with any AI service."
	NotConfiguredReply = "AI service not configured."

	VisionFallbackReply      = "Image analysis failed with all available services."
	VisionNotConfiguredReply = "Image analysis service not configured."

	DefaultVisionPrompt = "Analyze this image for any health-related information, symptoms, or medications. " +
		"Describe what you see and provide a concise summary. " +
		"Always include a disclaimer: 'This is not a substitute for a doctor.'"
)

// Chain tries providers in priority order, falling through on any provider
// error. Provider errors never escape the chain: chat and vision degrade to
// fixed user-safe strings on exhaustion, transcription and speech return
// explicit errors.
type Chain struct {
	chat         []ChatProvider
	vision       []VisionProvider
	transcribers []Transcriber
	speech       []SpeechSynthesizer
}

func NewChain(
	chat []ChatProvider,
	vision []VisionProvider,
	transcribers []Transcriber,
	speech []SpeechSynthesizer,
) *Chain {
	return &Chain{
		chat:         chat,
		vision:       vision,
		transcribers: transcribers,
		speech:       speech,
	}
}

// Reply generates the assistant reply for the utterance. Every provider
// receives the identical utterance and history.
func (c *Chain) Reply(ctx context.Context, utterance string, history []domain.Message) string {
	if len(c.chat) == 0 {
		return NotConfiguredReply
	}

	for _, p := range c.chat {
		reply, err := p.GenerateReply(ctx, utterance, history)
		if err != nil {
			slog.ErrorContext(ctx, "Chat provider failed, falling through", "provider", p.Name(), logger.Err(err))
			continue
		}
		return reply
	}

	return FallbackReply
}

// AnalyzeImage produces a text summary of the image. An empty prompt selects
// the default health-context prompt.
func (c *Chain) AnalyzeImage(ctx context.Context, image []byte, prompt string) string {
	if len(c.vision) == 0 {
		return VisionNotConfiguredReply
	}

	if prompt == "" {
		prompt = DefaultVisionPrompt
	}

	for _, p := range c.vision {
		summary, err := p.AnalyzeImage(ctx, image, prompt)
		if err != nil {
			slog.ErrorContext(ctx, "Vision provider failed, falling through", "provider", p.Name(), logger.Err(err))
			continue
		}
		return summary
	}

	return VisionFallbackReply
}

// Transcribe converts audio to text. Unlike chat, there is no text to
// fabricate on failure, so exhaustion surfaces as an error.
func (c *Chain) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(c.transcribers) == 0 {
		return "", fmt.Errorf("transcription: %w", domain.ErrNotConfigured)
	}

	var errs error
	for _, p := range c.transcribers {
		text, err := p.Transcribe(ctx, audio, filename)
		if err != nil {
			slog.ErrorContext(ctx, "Transcriber failed, falling through", "provider", p.Name(), logger.Err(err))
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("all transcribers failed: %w", errs)
}

// Synthesize converts text to audio bytes. Absence of a synthesizer is a
// degraded feature, reported as domain.ErrNotConfigured.
func (c *Chain) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if len(c.speech) == 0 {
		return nil, fmt.Errorf("speech synthesis: %w", domain.ErrNotConfigured)
	}

	var errs error
	for _, p := range c.speech {
		audio, err := p.Synthesize(ctx, text)
		if err != nil {
			slog.ErrorContext(ctx, "Speech synthesizer failed, falling through", "provider", p.Name(), logger.Err(err))
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		return audio, nil
	}

	return nil, fmt.Errorf("all speech synthesizers failed: %w", errs)
}
