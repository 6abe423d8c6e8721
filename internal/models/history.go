package models

import "time"

// AnalysisMethod tags which modality produced a history entry.
type AnalysisMethod string

const (
	MethodText  AnalysisMethod = "text"
	MethodVoice AnalysisMethod = "voice"
	MethodVideo AnalysisMethod = "video"
)

// HistoryEntry is one persisted classification event. Entries are append-only:
// the store assigns the monotonic ID, the recorder assigns the UTC timestamp,
// and nothing updates or deletes them afterwards.
type HistoryEntry struct {
	ID             int64          `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	Mood           MoodLabel      `json:"mood"`
	SentimentScore *float64       `json:"sentiment_score"`
	Method         AnalysisMethod `json:"method"`
	TextContent    *string        `json:"text_content,omitempty"`
	Confidence     float64        `json:"confidence"`
}
