package history

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/moodlens/moodlens/internal/models"
)

type fakeStore struct {
	entries []models.HistoryEntry
	nextID  int64
	failing bool
}

func (f *fakeStore) Insert(ctx context.Context, entry models.HistoryEntry) (int64, error) {
	if f.failing {
		return 0, errors.New("disk full")
	}
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, entry)
	return entry.ID, nil
}

func (f *fakeStore) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if f.failing {
		return nil, errors.New("disk full")
	}
	sorted := append([]models.HistoryEntry(nil), f.entries...)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.After(sorted[j].Timestamp)
		}
		return sorted[i].ID > sorted[j].ID
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (f *fakeStore) Close() error { return nil }

type capturingPublisher struct {
	published []models.HistoryEntry
	err       error
}

func (p *capturingPublisher) PublishMoodEvent(ctx context.Context, entry models.HistoryEntry) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, entry)
	return nil
}

func score(f float64) *float64 { return &f }

func TestRecorderRecord(t *testing.T) {
	store := &fakeStore{}
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(store, withClock(func() time.Time { return fixed }))

	entry, err := r.Record(context.Background(), models.HistoryEntry{
		Mood:           models.MoodHappy,
		SentimentScore: score(0.8),
		Method:         models.MethodText,
		Confidence:     0.8,
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if entry.ID != 1 {
		t.Errorf("Record() id = %d, want 1", entry.ID)
	}
	if !entry.Timestamp.Equal(fixed) {
		t.Errorf("Record() timestamp = %v, want %v", entry.Timestamp, fixed)
	}

	got, err := r.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Recent(1) returned %d entries, want 1", len(got))
	}
	if got[0].Mood != models.MoodHappy || got[0].Method != models.MethodText || got[0].Confidence != 0.8 {
		t.Errorf("Recent(1) returned %+v, want the recorded entry", got[0])
	}
}

func TestRecorderRecordStorageError(t *testing.T) {
	r := NewRecorder(&fakeStore{failing: true})

	_, err := r.Record(context.Background(), models.HistoryEntry{
		Mood:   models.MoodSad,
		Method: models.MethodText,
	})
	if !errors.Is(err, models.ErrStorage) {
		t.Errorf("Record() error = %v, want models.ErrStorage", err)
	}
}

func TestRecorderRecentRoundTrip(t *testing.T) {
	store := &fakeStore{}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := 0
	r := NewRecorder(store, withClock(func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}))

	moods := []models.MoodLabel{models.MoodHappy, models.MoodSad, models.MoodAngry, models.MoodNeutral}
	for _, m := range moods {
		if _, err := r.Record(context.Background(), models.HistoryEntry{Mood: m, Method: models.MethodText}); err != nil {
			t.Fatalf("Record(%s) error: %v", m, err)
		}
	}

	got, err := r.Recent(context.Background(), len(moods))
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != len(moods) {
		t.Fatalf("Recent() returned %d entries, want %d", len(got), len(moods))
	}
	for i, entry := range got {
		want := moods[len(moods)-1-i]
		if entry.Mood != want {
			t.Errorf("Recent()[%d] mood = %q, want %q (reverse insertion order)", i, entry.Mood, want)
		}
	}
}

func TestRecorderRecentTimestampTiesBreakByID(t *testing.T) {
	store := &fakeStore{}
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecorder(store, withClock(func() time.Time { return fixed }))

	for j := 0; j < 3; j++ {
		if _, err := r.Record(context.Background(), models.HistoryEntry{Mood: models.MoodNeutral, Method: models.MethodVideo}); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	got, err := r.Recent(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].ID <= got[i].ID {
			t.Errorf("Recent() ids not descending on equal timestamps: %d then %d", got[i-1].ID, got[i].ID)
		}
	}
}

func TestRecorderRecentDefaultsAndEmpty(t *testing.T) {
	r := NewRecorder(&fakeStore{})

	got, err := r.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if got == nil {
		t.Error("Recent() on empty history returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Recent() on empty history returned %d entries", len(got))
	}
}

func TestRecorderRecentLimit(t *testing.T) {
	store := &fakeStore{}
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	i := 0
	r := NewRecorder(store, withClock(func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}))

	for j := 0; j < 10; j++ {
		if _, err := r.Record(context.Background(), models.HistoryEntry{Mood: models.MoodHappy, Method: models.MethodText}); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
	}

	got, err := r.Recent(context.Background(), 4)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("Recent(4) returned %d entries, want 4", len(got))
	}
}

func TestRecorderPublishesEvents(t *testing.T) {
	pub := &capturingPublisher{}
	r := NewRecorder(&fakeStore{}, WithPublisher(pub))

	entry, err := r.Record(context.Background(), models.HistoryEntry{
		Mood:   models.MoodAnxious,
		Method: models.MethodVideo,
	})
	if err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	if len(pub.published) != 1 {
		t.Fatalf("publisher received %d events, want 1", len(pub.published))
	}
	if pub.published[0].ID != entry.ID {
		t.Errorf("published entry id = %d, want %d", pub.published[0].ID, entry.ID)
	}
}

func TestRecorderPublisherFailureDoesNotFailRecord(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("broker down")}
	r := NewRecorder(&fakeStore{}, WithPublisher(pub))

	if _, err := r.Record(context.Background(), models.HistoryEntry{
		Mood:   models.MoodHappy,
		Method: models.MethodText,
	}); err != nil {
		t.Errorf("Record() error = %v, want nil despite publish failure", err)
	}
}
