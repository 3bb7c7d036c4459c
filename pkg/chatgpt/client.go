package chatgpt

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

const (
	chatModel   = "gpt-3.5-turbo"
	visionModel = "gpt-4o"

	systemPrompt = "You are a helpful healthcare assistant. " +
		"Always include a disclaimer: 'This is not a substitute for a doctor.'"
)

type client struct {
	api *openai.Client
}

func NewClient(token string) (*client, error) {
	if token == "" {
		return nil, fmt.Errorf("token is empty")
	}
	return &client{api: openai.NewClient(token)}, nil
}

func (c *client) Name() string { return "openai" }

// GenerateReply completes the conversation. The history already ends with the
// user turn carrying the utterance, so only the history is serialized.
func (c *client) GenerateReply(ctx context.Context, utterance string, history []domain.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Role == domain.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    chatModel,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no completion response from API")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *client) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: visionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image),
						},
					},
				},
			},
		},
		MaxTokens: 1000,
	})
	if err != nil {
		return "", fmt.Errorf("creating vision completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("no vision response from API")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}
	if resp.Text == "" {
		return "", fmt.Errorf("empty transcription from API")
	}

	return resp.Text, nil
}

func (c *client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := c.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: openai.VoiceAlloy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating speech: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("reading speech response: %w", err)
	}

	return audio, nil
}
