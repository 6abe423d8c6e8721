package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/moodlens/moodlens/internal/models"
)

// timeLayout is fixed-width so that lexicographic ORDER BY on the stored
// text matches chronological order. RFC3339Nano trims trailing zeros and
// would not.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore is the default history store: a single mood_history table with
// an AUTOINCREMENT id, so insert order is the monotonic tie-breaker.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrating sqlite db: %w", err)
	}

	slog.Info("[SQLiteStore] Mood history store ready", slog.String("path", path))
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS mood_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			mood_type TEXT NOT NULL,
			sentiment_score REAL,
			analysis_method TEXT NOT NULL,
			text_content TEXT,
			confidence REAL NOT NULL
		)
	`)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Insert(ctx context.Context, entry models.HistoryEntry) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO mood_history (timestamp, mood_type, sentiment_score, analysis_method, text_content, confidence)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.UTC().Format(timeLayout),
		string(entry.Mood),
		entry.SentimentScore,
		string(entry.Method),
		entry.TextContent,
		entry.Confidence,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting history entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, mood_type, sentiment_score, analysis_method, text_content, confidence
		FROM mood_history
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var (
			entry models.HistoryEntry
			ts    string
			score sql.NullFloat64
			text  sql.NullString
		)
		if err := rows.Scan(&entry.ID, &ts, &entry.Mood, &score, &entry.Method, &text, &entry.Confidence); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}

		entry.Timestamp, err = time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing history timestamp %q: %w", ts, err)
		}
		if score.Valid {
			entry.SentimentScore = &score.Float64
		}
		if text.Valid {
			entry.TextContent = &text.String
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history rows: %w", err)
	}

	return entries, nil
}
