package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

	chatModel   = "gemini-pro"
	visionModel = "gemini-pro-vision"
)

const (
	roleUser  = "user"
	roleModel = "model"
)

type client struct {
	key     string
	baseURL string
	hc      *http.Client
}

func NewClient(key string) (*client, error) {
	if key == "" {
		return nil, fmt.Errorf("api key is empty")
	}
	return &client{
		key:     key,
		baseURL: defaultBaseURL,
		hc:      &http.Client{},
	}, nil
}

func (c *client) Name() string { return "gemini" }

// GenerateReply completes the conversation. Assistant turns are relabeled to
// Gemini's "model" role; order and content are preserved as-is.
func (c *client) GenerateReply(ctx context.Context, utterance string, history []domain.Message) (string, error) {
	contents := make([]content, 0, len(history))
	for _, msg := range history {
		role := roleUser
		if msg.Role == domain.RoleAssistant {
			role = roleModel
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: msg.Content}}})
	}

	return c.generateContent(ctx, chatModel, &generateContentRequest{
		Contents:       contents,
		SafetySettings: permissiveSafetySettings,
	})
}

func (c *client) AnalyzeImage(ctx context.Context, image []byte, prompt string) (string, error) {
	return c.generateContent(ctx, visionModel, &generateContentRequest{
		Contents: []content{{
			Role: roleUser,
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
		SafetySettings: permissiveSafetySettings,
	})
}

func (c *client) generateContent(ctx context.Context, model string, request *generateContentRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, model, c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var contentResponse generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&contentResponse); err != nil {
		return "", fmt.Errorf("decoding response data: %w", err)
	}

	text := contentResponse.text()
	if text == "" {
		return "", fmt.Errorf("no candidate content in response")
	}

	return text, nil
}

func (r *generateContentResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
