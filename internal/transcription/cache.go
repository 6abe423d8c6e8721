package transcription

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	transcriptKeyPrefix = "moodlens:transcript:"
	transcriptTTL       = 86400 // seconds

	cacheRetries = 3
	cacheBackoff = 250 * time.Millisecond
)

// TranscriptCache keeps recent transcripts in valkey keyed by the audio
// payload hash, so replays of the same clip skip the collaborator call.
type TranscriptCache struct {
	client valkey.Client
}

func NewTranscriptCache(client valkey.Client) *TranscriptCache {
	return &TranscriptCache{client: client}
}

func (c *TranscriptCache) Get(ctx context.Context, audio []byte) (string, bool) {
	res := c.doWithRetry(ctx, c.client.B().Get().Key(audioKey(audio)).Build())
	if res.Error() != nil {
		return "", false
	}

	text, err := res.ToString()
	if err != nil {
		return "", false
	}
	return text, true
}

func (c *TranscriptCache) Put(ctx context.Context, audio []byte, transcript string) {
	res := c.doWithRetry(ctx,
		c.client.B().Set().Key(audioKey(audio)).Value(transcript).ExSeconds(transcriptTTL).Build())
	if err := res.Error(); err != nil {
		slog.Warn("[TranscriptCache] Failed to store transcript",
			slog.String("error", err.Error()))
	}
}

func (c *TranscriptCache) doWithRetry(ctx context.Context, cmd valkey.Completed) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < cacheRetries; i++ {
		result = c.client.Do(ctx, cmd)
		if result.Error() == nil || valkey.IsValkeyNil(result.Error()) {
			break
		}

		slog.Warn("[TranscriptCache] Command failed",
			slog.Int("attempt", i+1),
			slog.String("error", result.Error().Error()))

		time.Sleep(cacheBackoff)
	}
	return result
}

func audioKey(audio []byte) string {
	sum := sha256.Sum256(audio)
	return transcriptKeyPrefix + hex.EncodeToString(sum[:])
}

// CachingTranscriber wraps a Transcriber with a TranscriptCache.
type CachingTranscriber struct {
	inner Transcriber
	cache *TranscriptCache
}

func NewCachingTranscriber(inner Transcriber, cache *TranscriptCache) *CachingTranscriber {
	return &CachingTranscriber{inner: inner, cache: cache}
}

func (c *CachingTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if text, ok := c.cache.Get(ctx, audio); ok {
		slog.Info("[TranscriptCache] Serving cached transcript")
		return text, nil
	}

	text, err := c.inner.Transcribe(ctx, audio, filename)
	if err != nil {
		return "", err
	}

	c.cache.Put(ctx, audio, text)
	return text, nil
}
