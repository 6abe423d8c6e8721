// Package history persists classification events and replays the most
// recent ones. Entries are append-only; concurrent records rely on the
// store assigning each insert a unique, monotonically increasing id.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/moodlens/moodlens/internal/models"
)

// DefaultLimit caps history retrieval when the caller does not ask for a
// specific count.
const DefaultLimit = 50

// Store is the persistence collaborator. Insert must be atomic and return
// the assigned id; Recent must order by (timestamp DESC, id DESC).
type Store interface {
	Insert(ctx context.Context, entry models.HistoryEntry) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
	Close() error
}

// Publisher receives recorded entries for downstream consumers. Publishing
// is best-effort: failures are logged, never surfaced to the caller.
type Publisher interface {
	PublishMoodEvent(ctx context.Context, entry models.HistoryEntry) error
}

type Recorder struct {
	store  Store
	events Publisher
	now    func() time.Time
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithPublisher attaches an event publisher for recorded entries.
func WithPublisher(p Publisher) Option {
	return func(r *Recorder) { r.events = p }
}

// withClock overrides timestamp assignment in tests.
func withClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

func NewRecorder(store Store, opts ...Option) *Recorder {
	r := &Recorder{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record assigns the timestamp, persists the entry synchronously and returns
// it with the store-assigned id. Persistence failures surface wrapped in
// models.ErrStorage.
func (r *Recorder) Record(ctx context.Context, entry models.HistoryEntry) (models.HistoryEntry, error) {
	entry.Timestamp = r.now().UTC()

	id, err := r.store.Insert(ctx, entry)
	if err != nil {
		return models.HistoryEntry{}, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	entry.ID = id

	if r.events != nil {
		if err := r.events.PublishMoodEvent(ctx, entry); err != nil {
			slog.Warn("[HistoryRecorder] Failed to publish mood event",
				slog.Int64("entry_id", entry.ID),
				slog.String("error", err.Error()))
		}
	}

	return entry, nil
}

// Recent returns at most limit entries, newest first. A non-positive limit
// falls back to DefaultLimit. Empty history yields an empty slice, not an
// error.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	entries, err := r.store.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return entries, nil
}
