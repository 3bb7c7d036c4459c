package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type MessagesRepository interface {
	Add(ctx context.Context, msg domain.Message) (domain.Message, error)
	History(ctx context.Context, userID string) ([]domain.Message, error)
}

type ReplyGenerator interface {
	Reply(ctx context.Context, utterance string, history []domain.Message) string
}

// historyWindow bounds the transcript slice sent to chat providers. The
// persisted transcript and the history returned to callers stay complete.
const historyWindow = 50

type chatService struct {
	messagesRepo MessagesRepository
	replier      ReplyGenerator
}

func NewChatService(messagesRepo MessagesRepository, replier ReplyGenerator) *chatService {
	return &chatService{
		messagesRepo: messagesRepo,
		replier:      replier,
	}
}

// Converse runs one turn: persist the user utterance, reload the transcript,
// generate a reply over it, persist the reply, and return it together with
// the fully updated transcript. A store failure before the reply aborts the
// turn with only the user message persisted.
func (c *chatService) Converse(ctx context.Context, userID, message string) (string, []domain.Message, error) {
	if _, err := c.messagesRepo.Add(ctx, domain.Message{
		UserID:    userID,
		Role:      domain.RoleUser,
		Content:   message,
		Timestamp: time.Now(),
	}); err != nil {
		return "", nil, fmt.Errorf("saving user message: %w", err)
	}

	history, err := c.messagesRepo.History(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("fetching chat history: %w", err)
	}

	slog.InfoContext(ctx, "Generating chat reply", "userID", userID, "historySize", len(history))

	reply := c.replier.Reply(ctx, message, window(history))

	if _, err := c.messagesRepo.Add(ctx, domain.Message{
		UserID:    userID,
		Role:      domain.RoleAssistant,
		Content:   reply,
		Timestamp: time.Now(),
	}); err != nil {
		return "", nil, fmt.Errorf("saving assistant message: %w", err)
	}

	updated, err := c.messagesRepo.History(ctx, userID)
	if err != nil {
		return "", nil, fmt.Errorf("fetching updated chat history: %w", err)
	}

	return reply, updated, nil
}

func window(history []domain.Message) []domain.Message {
	if len(history) <= historyWindow {
		return history
	}
	return history[len(history)-historyWindow:]
}
