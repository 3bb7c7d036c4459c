package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type fakeChatService struct {
	reply   string
	history []domain.Message
	err     error

	gotUserID  string
	gotMessage string
}

func (f *fakeChatService) Converse(_ context.Context, userID, message string) (string, []domain.Message, error) {
	f.gotUserID = userID
	f.gotMessage = message
	return f.reply, f.history, f.err
}

func TestChatConverse(t *testing.T) {
	service := &fakeChatService{
		reply: "Stay **hydrated**.",
		history: []domain.Message{
			{ID: 1, UserID: "u1", Role: domain.RoleUser, Content: "I feel dizzy"},
			{ID: 2, UserID: "u1", Role: domain.RoleAssistant, Content: "Stay **hydrated**."},
		},
	}
	h := NewChat(service)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"user_id":"u1","message":"I feel dizzy"}`))
	rec := httptest.NewRecorder()
	h.Converse(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if service.gotUserID != "u1" || service.gotMessage != "I feel dizzy" {
		t.Errorf("service called with (%q, %q)", service.gotUserID, service.gotMessage)
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Reply != "Stay **hydrated**." {
		t.Errorf("reply = %q", resp.Reply)
	}
	if !strings.Contains(resp.ReplyHTML, "<strong>hydrated</strong>") {
		t.Errorf("reply_html = %q, want rendered markdown", resp.ReplyHTML)
	}
	if len(resp.ChatHistory) != 2 {
		t.Errorf("chat_history has %d messages, want 2", len(resp.ChatHistory))
	}
}

func TestChatConverse_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing user_id", `{"message":"hi"}`},
		{"missing message", `{"user_id":"u1"}`},
		{"malformed json", `{"user_id":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewChat(&fakeChatService{})

			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Converse(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestChatConverse_ServiceError(t *testing.T) {
	h := NewChat(&fakeChatService{err: fmt.Errorf("db down")})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"user_id":"u1","message":"hi"}`))
	rec := httptest.NewRecorder()
	h.Converse(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "db down") {
		t.Error("internal error detail leaked to client")
	}
}
