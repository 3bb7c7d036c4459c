package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type fakeMessagesRepo struct {
	messages []domain.Message
	nextID   int64

	failAddAfter int // fail Add calls once this many have succeeded; -1 never fails
	addCalls     int
	historyErr   error
}

func newFakeMessagesRepo() *fakeMessagesRepo {
	return &fakeMessagesRepo{failAddAfter: -1}
}

func (f *fakeMessagesRepo) Add(_ context.Context, msg domain.Message) (domain.Message, error) {
	if f.failAddAfter >= 0 && f.addCalls >= f.failAddAfter {
		return domain.Message{}, errors.New("store unavailable")
	}
	f.addCalls++
	f.nextID++
	msg.ID = f.nextID
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeMessagesRepo) History(_ context.Context, userID string) ([]domain.Message, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	var out []domain.Message
	for _, msg := range f.messages {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type fakeReplier struct {
	reply string

	calls        int
	gotUtterance string
	gotHistory   []domain.Message
}

func (f *fakeReplier) Reply(_ context.Context, utterance string, history []domain.Message) string {
	f.calls++
	f.gotUtterance = utterance
	f.gotHistory = history
	return f.reply
}

func TestConverse_AppendsUserThenAssistant(t *testing.T) {
	repo := newFakeMessagesRepo()
	replier := &fakeReplier{reply: "Try resting and drink water. This is not a substitute for a doctor."}
	svc := NewChatService(repo, replier)

	reply, history, err := svc.Converse(context.Background(), "u1", "I have a headache")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != replier.reply {
		t.Errorf("reply = %q, want %q", reply, replier.reply)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2-element history, got %d", len(history))
	}
	if history[0].Role != domain.RoleUser || history[0].Content != "I have a headache" {
		t.Errorf("unexpected first message: %+v", history[0])
	}
	if history[1].Role != domain.RoleAssistant || history[1].Content != replier.reply {
		t.Errorf("unexpected second message: %+v", history[1])
	}
	if history[1].Timestamp.Before(history[0].Timestamp) {
		t.Error("assistant timestamp precedes user timestamp")
	}
}

func TestConverse_ReplierSeesPersistedUserTurn(t *testing.T) {
	repo := newFakeMessagesRepo()
	replier := &fakeReplier{reply: "ok"}
	svc := NewChatService(repo, replier)

	if _, _, err := svc.Converse(context.Background(), "u1", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if replier.gotUtterance != "hello" {
		t.Errorf("utterance = %q, want %q", replier.gotUtterance, "hello")
	}
	if len(replier.gotHistory) != 1 {
		t.Fatalf("expected replier history of 1 message, got %d", len(replier.gotHistory))
	}
	last := replier.gotHistory[len(replier.gotHistory)-1]
	if last.Role != domain.RoleUser || last.Content != "hello" {
		t.Errorf("history must end with the persisted user turn, got %+v", last)
	}
}

func TestConverse_StoreFailureAbortsBeforeReply(t *testing.T) {
	repo := newFakeMessagesRepo()
	repo.failAddAfter = 0
	replier := &fakeReplier{reply: "ok"}
	svc := NewChatService(repo, replier)

	if _, _, err := svc.Converse(context.Background(), "u1", "hello"); err == nil {
		t.Fatal("expected error when the store rejects the user message")
	}
	if replier.calls != 0 {
		t.Errorf("reply must not be attempted after a store failure, got %d calls", replier.calls)
	}
	if len(repo.messages) != 0 {
		t.Errorf("expected no persisted messages, got %d", len(repo.messages))
	}
}

func TestConverse_AssistantSaveFailureKeepsUserMessage(t *testing.T) {
	repo := newFakeMessagesRepo()
	repo.failAddAfter = 1
	svc := NewChatService(repo, &fakeReplier{reply: "ok"})

	if _, _, err := svc.Converse(context.Background(), "u1", "hello"); err == nil {
		t.Fatal("expected error when the assistant message cannot be saved")
	}
	if len(repo.messages) != 1 || repo.messages[0].Role != domain.RoleUser {
		t.Errorf("expected only the user message to persist, got %+v", repo.messages)
	}
}

func TestConverse_HistoryGrowsByTwoPerTurn(t *testing.T) {
	repo := newFakeMessagesRepo()
	svc := NewChatService(repo, &fakeReplier{reply: "ok"})

	const turns = 3
	var history []domain.Message
	for i := 0; i < turns; i++ {
		var err error
		if _, history, err = svc.Converse(context.Background(), "u1", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i, err)
		}
	}

	if len(history) != 2*turns {
		t.Fatalf("expected %d messages after %d turns, got %d", 2*turns, turns, len(history))
	}
	for i := 0; i+1 < len(history); i++ {
		if history[i+1].Timestamp.Before(history[i].Timestamp) {
			t.Errorf("history not in non-decreasing timestamp order at index %d", i)
		}
	}
	for i, msg := range history {
		want := domain.RoleUser
		if i%2 == 1 {
			want = domain.RoleAssistant
		}
		if msg.Role != want {
			t.Errorf("history[%d].Role = %q, want %q", i, msg.Role, want)
		}
	}

	// A re-read with no writes in between returns the identical sequence.
	again, err := repo.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != len(history) {
		t.Fatalf("re-read returned %d messages, want %d", len(again), len(history))
	}
	for i := range history {
		if again[i] != history[i] {
			t.Errorf("re-read history[%d] differs: %+v vs %+v", i, again[i], history[i])
		}
	}
}

func TestConverse_WindowsProviderHistory(t *testing.T) {
	repo := newFakeMessagesRepo()
	replier := &fakeReplier{reply: "ok"}
	svc := NewChatService(repo, replier)

	for i := 0; i < historyWindow; i++ {
		if _, _, err := svc.Converse(context.Background(), "u1", fmt.Sprintf("message %d", i)); err != nil {
			t.Fatalf("turn %d: unexpected error: %v", i, err)
		}
	}

	if len(replier.gotHistory) != historyWindow {
		t.Errorf("provider history = %d messages, want window of %d", len(replier.gotHistory), historyWindow)
	}
	last := replier.gotHistory[len(replier.gotHistory)-1]
	if last.Content != fmt.Sprintf("message %d", historyWindow-1) {
		t.Errorf("window must keep the most recent messages, last = %q", last.Content)
	}

	// The returned transcript is not windowed.
	_, history, err := svc.Converse(context.Background(), "u1", "one more")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2*historyWindow+2 {
		t.Errorf("returned transcript = %d messages, want %d", len(history), 2*historyWindow+2)
	}
}
