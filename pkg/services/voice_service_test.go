package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeSynthesizer struct {
	audio []byte
	err   error
}

func (f *fakeSynthesizer) Synthesize(context.Context, string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

func TestConverseFromAudio(t *testing.T) {
	repo := newFakeMessagesRepo()
	chatSvc := NewChatService(repo, &fakeReplier{reply: "drink water"})
	uploader := &fakeUploader{url: "https://cdn.example/tts/u1/r.mp3"}
	svc := NewVoiceService(
		&fakeTranscriber{text: "I have a headache"},
		&fakeSynthesizer{audio: []byte("mp3")},
		uploader,
		chatSvc,
	)

	text, reply, audioURL, err := svc.ConverseFromAudio(context.Background(), "u1", []byte{0x1}, "voice.wav")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "I have a headache" {
		t.Errorf("text = %q", text)
	}
	if reply != "drink water" {
		t.Errorf("reply = %q", reply)
	}
	if audioURL != uploader.url {
		t.Errorf("audioURL = %q, want %q", audioURL, uploader.url)
	}
	if !strings.HasPrefix(uploader.gotPath, "tts/u1/") {
		t.Errorf("unexpected tts object path: %q", uploader.gotPath)
	}

	// The transcript carries the transcribed text as the user turn.
	if len(repo.messages) != 2 || repo.messages[0].Content != "I have a headache" {
		t.Errorf("unexpected persisted messages: %+v", repo.messages)
	}
}

func TestConverseFromAudio_TranscriptionFailureAbortsTurn(t *testing.T) {
	repo := newFakeMessagesRepo()
	chatSvc := NewChatService(repo, &fakeReplier{reply: "x"})
	svc := NewVoiceService(
		&fakeTranscriber{err: errors.New("whisper down")},
		&fakeSynthesizer{audio: []byte("mp3")},
		&fakeUploader{url: "u"},
		chatSvc,
	)

	if _, _, _, err := svc.ConverseFromAudio(context.Background(), "u1", []byte{0x1}, "voice.wav"); err == nil {
		t.Fatal("expected error when transcription fails")
	}
	if len(repo.messages) != 0 {
		t.Errorf("no messages may persist without a transcript, got %d", len(repo.messages))
	}
}

func TestConverseFromAudio_MissingSynthesizerDegrades(t *testing.T) {
	repo := newFakeMessagesRepo()
	chatSvc := NewChatService(repo, &fakeReplier{reply: "drink water"})
	svc := NewVoiceService(
		&fakeTranscriber{text: "hello"},
		&fakeSynthesizer{err: domain.ErrNotConfigured},
		&fakeUploader{url: "u"},
		chatSvc,
	)

	text, reply, audioURL, err := svc.ConverseFromAudio(context.Background(), "u1", []byte{0x1}, "voice.wav")
	if err != nil {
		t.Fatalf("turn must succeed without a synthesizer, got %v", err)
	}
	if text == "" || reply == "" {
		t.Errorf("expected text and reply, got %q / %q", text, reply)
	}
	if audioURL != "" {
		t.Errorf("expected empty audio url, got %q", audioURL)
	}
}

func TestConverseFromAudio_UploadFailureDegrades(t *testing.T) {
	repo := newFakeMessagesRepo()
	chatSvc := NewChatService(repo, &fakeReplier{reply: "drink water"})
	svc := NewVoiceService(
		&fakeTranscriber{text: "hello"},
		&fakeSynthesizer{audio: []byte("mp3")},
		&fakeUploader{err: errors.New("bucket down")},
		chatSvc,
	)

	_, _, audioURL, err := svc.ConverseFromAudio(context.Background(), "u1", []byte{0x1}, "voice.wav")
	if err != nil {
		t.Fatalf("turn must succeed when only the audio upload fails, got %v", err)
	}
	if audioURL != "" {
		t.Errorf("expected empty audio url, got %q", audioURL)
	}
}
