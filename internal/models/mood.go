package models

// MoodLabel is the canonical mood taxonomy. Every analysis path resolves to
// exactly one of these values; nothing else reaches the recommendation
// resolver or the history recorder.
type MoodLabel string

const (
	MoodHappy     MoodLabel = "happy"
	MoodSad       MoodLabel = "sad"
	MoodAngry     MoodLabel = "angry"
	MoodAnxious   MoodLabel = "anxious"
	MoodNeutral   MoodLabel = "neutral"
	MoodSurprised MoodLabel = "surprised"
)

func (m MoodLabel) Valid() bool {
	switch m {
	case MoodHappy, MoodSad, MoodAngry, MoodAnxious, MoodNeutral, MoodSurprised:
		return true
	}
	return false
}

// SentimentScore carries the polarity scores emitted by the sentiment
// collaborator for a piece of text. Compound is in [-1, 1]; the three
// component scores sum to roughly 1.
type SentimentScore struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
}

// EmotionScore is one (emotion, weight) pair from the face-emotion
// collaborator. Weights are percentage-like values in the 0-100 range.
type EmotionScore struct {
	Emotion string  `json:"emotion"`
	Score   float64 `json:"score"`
}

// ClassificationResult is the classifier output for one analysis.
// Exactly one of Sentiment or Emotions is set, depending on the modality.
type ClassificationResult struct {
	Mood            MoodLabel       `json:"mood"`
	Confidence      float64         `json:"confidence"`
	DominantEmotion string          `json:"dominant_emotion,omitempty"`
	Sentiment       *SentimentScore `json:"sentiment,omitempty"`
	Emotions        []EmotionScore  `json:"emotions,omitempty"`
}
