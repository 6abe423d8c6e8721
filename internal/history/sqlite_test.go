package history

import (
	"context"
	"testing"
	"time"

	"github.com/moodlens/moodlens/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore(:memory:) error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreInsertAndRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	text := "I am so happy today!"
	entries := []models.HistoryEntry{
		{Timestamp: base, Mood: models.MoodHappy, SentimentScore: score(0.8), Method: models.MethodText, TextContent: &text, Confidence: 0.8},
		{Timestamp: base.Add(time.Second), Mood: models.MoodSad, SentimentScore: score(-0.4), Method: models.MethodVoice, Confidence: 0.4},
		{Timestamp: base.Add(2 * time.Second), Mood: models.MoodAngry, Method: models.MethodVideo, Confidence: 0.8},
	}

	var lastID int64
	for _, e := range entries {
		id, err := s.Insert(ctx, e)
		if err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
		if id <= lastID {
			t.Errorf("Insert() id = %d, want monotonically increasing (last %d)", id, lastID)
		}
		lastID = id
	}

	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(got))
	}

	// Newest first.
	if got[0].Mood != models.MoodAngry || got[1].Mood != models.MoodSad || got[2].Mood != models.MoodHappy {
		t.Errorf("Recent() order = %s, %s, %s; want angry, sad, happy", got[0].Mood, got[1].Mood, got[2].Mood)
	}

	// Nullable columns round-trip.
	if got[0].SentimentScore != nil {
		t.Error("video entry should have nil sentiment score")
	}
	if got[2].SentimentScore == nil || *got[2].SentimentScore != 0.8 {
		t.Error("text entry lost its sentiment score")
	}
	if got[2].TextContent == nil || *got[2].TextContent != text {
		t.Error("text entry lost its text content")
	}
	if !got[2].Timestamp.Equal(base) {
		t.Errorf("text entry timestamp = %v, want %v", got[2].Timestamp, base)
	}
}

func TestSQLiteStoreRecentLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		_, err := s.Insert(ctx, models.HistoryEntry{
			Timestamp:  base.Add(time.Duration(i) * time.Second),
			Mood:       models.MoodNeutral,
			Method:     models.MethodText,
			Confidence: 0,
		})
		if err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}

	got, err := s.Recent(ctx, 5)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Recent(5) returned %d entries, want 5", len(got))
	}
}

func TestSQLiteStoreTimestampTieBreaksByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if _, err := s.Insert(ctx, models.HistoryEntry{
			Timestamp: ts,
			Mood:      models.MoodNeutral,
			Method:    models.MethodText,
		}); err != nil {
			t.Fatalf("Insert() error: %v", err)
		}
	}

	got, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID <= got[i].ID {
			t.Errorf("Recent() ids not descending on tied timestamps: %d then %d", got[i-1].ID, got[i].ID)
		}
	}
}

func TestSQLiteStoreEmptyHistory(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Recent(context.Background(), 50)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Recent() on empty table returned %d entries", len(got))
	}
}
