package models

import "time"

// Response envelopes for the analysis API.

type TextAnalysisResponse struct {
	Mood                    MoodLabel      `json:"mood"`
	SentimentScore          float64        `json:"sentiment_score"`
	Confidence              float64        `json:"confidence"`
	DetailedScores          SentimentScore `json:"detailed_scores"`
	WellnessRecommendations []string       `json:"wellness_recommendations"`
	Timestamp               time.Time      `json:"timestamp"`
}

type VoiceAnalysisResponse struct {
	Transcription string `json:"transcription"`
	TextAnalysisResponse
}

type VideoAnalysisResponse struct {
	Mood                    MoodLabel      `json:"mood"`
	DominantEmotion         string         `json:"dominant_emotion"`
	Confidence              float64        `json:"confidence"`
	AllEmotions             []EmotionScore `json:"all_emotions"`
	WellnessRecommendations []string       `json:"wellness_recommendations"`
	Timestamp               time.Time      `json:"timestamp"`
}

type TravelResponse struct {
	Mood         MoodLabel     `json:"mood"`
	Destinations []Destination `json:"destinations"`
	TotalCount   int           `json:"total_count"`
}

type HistoryResponse struct {
	History []HistoryEntry `json:"history"`
}

// ErrorResponse is the structured error envelope every failure maps to.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
