package transcription

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/moodlens/moodlens/internal/models"
)

func newTestTranscriber(t *testing.T, handler http.HandlerFunc) *WhisperTranscriber {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(config),
		model:  openai.Whisper1,
	}
}

func TestWhisperTranscribe(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "I feel great today"}`))
	})

	text, err := tr.Transcribe(context.Background(), []byte("fake-wav-bytes"), "clip.wav")
	if err != nil {
		t.Fatalf("Transcribe() error: %v", err)
	}
	if text != "I feel great today" {
		t.Errorf("Transcribe() = %q, want %q", text, "I feel great today")
	}
}

func TestWhisperTranscribeEmptyResult(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "   "}`))
	})

	_, err := tr.Transcribe(context.Background(), []byte("static-noise"), "clip.wav")
	if !errors.Is(err, models.ErrTranscriptionFailed) {
		t.Errorf("Transcribe() error = %v, want models.ErrTranscriptionFailed", err)
	}
}

func TestWhisperTranscribeServiceError(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusInternalServerError)
	})

	_, err := tr.Transcribe(context.Background(), []byte("fake-wav-bytes"), "clip.wav")
	if !errors.Is(err, models.ErrTranscriptionService) {
		t.Errorf("Transcribe() error = %v, want models.ErrTranscriptionService", err)
	}
}
