// Package transcription converts captured audio into text via the
// speech-to-text collaborator.
package transcription

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/moodlens/moodlens/internal/models"
)

const whisperRequestTimeout = 60 * time.Second

// Transcriber turns an audio payload into text. Implementations distinguish
// audio the collaborator could not understand (models.ErrTranscriptionFailed)
// from collaborator failures (models.ErrTranscriptionService).
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// WhisperTranscriber uses the OpenAI Whisper API as the speech-to-text
// collaborator.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

func NewWhisperTranscriber(apiKey string) *WhisperTranscriber {
	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = &http.Client{Timeout: whisperRequestTimeout}

	slog.Info("[WhisperTranscriber] Transcription client initialized",
		slog.Duration("timeout", whisperRequestTimeout))

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(config),
		model:  openai.Whisper1,
	}
}

func (w *WhisperTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: filename,
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrTranscriptionService, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", models.ErrTranscriptionFailed
	}
	return text, nil
}
