package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/moodlens/moodlens/internal/catalog"
	"github.com/moodlens/moodlens/internal/emotion"
	"github.com/moodlens/moodlens/internal/history"
	"github.com/moodlens/moodlens/internal/models"
	"github.com/moodlens/moodlens/internal/mood"
	"github.com/moodlens/moodlens/internal/sentiment"
	"github.com/moodlens/moodlens/internal/transcription"
)

// EmotionAnalyzer is the face-emotion collaborator as the handlers see it.
type EmotionAnalyzer interface {
	Analyze(ctx context.Context, frame []byte) ([]models.EmotionScore, error)
}

// Handlers orchestrates one request per modality: collaborator call,
// classification, recommendation lookup, history record, response assembly.
// transcriber and emotions may be nil when the backend is not provisioned.
type Handlers struct {
	sentiment   *sentiment.Analyzer
	transcriber transcription.Transcriber
	emotions    EmotionAnalyzer
	catalog     *catalog.Catalog
	recorder    *history.Recorder

	emotionHealthy *atomic.Bool
}

func NewHandlers(
	sentimentAnalyzer *sentiment.Analyzer,
	transcriber transcription.Transcriber,
	emotions EmotionAnalyzer,
	cat *catalog.Catalog,
	recorder *history.Recorder,
) *Handlers {
	return &Handlers{
		sentiment:   sentimentAnalyzer,
		transcriber: transcriber,
		emotions:    emotions,
		catalog:     cat,
		recorder:    recorder,
	}
}

type textRequest struct {
	Text string `json:"text"`
}

// AnalyzeText handles POST /api/v1/analyze/text.
func (h *Handlers) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", models.ErrInvalidInput))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, fmt.Errorf("%w: no text provided", models.ErrInvalidInput))
		return
	}

	score := h.sentiment.Score(text)
	result := mood.ClassifyText(score, text)

	entry, err := h.recorder.Record(r.Context(), models.HistoryEntry{
		Mood:           result.Mood,
		SentimentScore: &score.Compound,
		Method:         models.MethodText,
		TextContent:    &text,
		Confidence:     result.Confidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TextAnalysisResponse{
		Mood:                    result.Mood,
		SentimentScore:          score.Compound,
		Confidence:              result.Confidence,
		DetailedScores:          score,
		WellnessRecommendations: h.catalog.WellnessFor(result.Mood),
		Timestamp:               entry.Timestamp,
	})
}

// AnalyzeVoice handles POST /api/v1/analyze/voice. The audio arrives as a
// multipart form file named "audio".
func (h *Handlers) AnalyzeVoice(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, fmt.Errorf("%w: no audio file provided", models.ErrInvalidInput))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("%w: reading audio upload", models.ErrInvalidInput))
		return
	}
	if len(audio) == 0 {
		writeError(w, fmt.Errorf("%w: audio file is empty", models.ErrInvalidInput))
		return
	}

	if h.transcriber == nil {
		writeError(w, fmt.Errorf("%w: transcription", models.ErrCollaboratorUnavailable))
		return
	}

	transcript, err := h.transcriber.Transcribe(r.Context(), audio, header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}

	score := h.sentiment.Score(transcript)
	result := mood.ClassifyVoiceText(score)

	entry, err := h.recorder.Record(r.Context(), models.HistoryEntry{
		Mood:           result.Mood,
		SentimentScore: &score.Compound,
		Method:         models.MethodVoice,
		TextContent:    &transcript,
		Confidence:     result.Confidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.VoiceAnalysisResponse{
		Transcription: transcript,
		TextAnalysisResponse: models.TextAnalysisResponse{
			Mood:                    result.Mood,
			SentimentScore:          score.Compound,
			Confidence:              result.Confidence,
			DetailedScores:          score,
			WellnessRecommendations: h.catalog.WellnessFor(result.Mood),
			Timestamp:               entry.Timestamp,
		},
	})
}

type videoRequest struct {
	ImageData string `json:"image_data"`
}

// AnalyzeVideo handles POST /api/v1/analyze/video. The frame arrives as a
// base64 data URL captured from the client camera.
func (h *Handlers) AnalyzeVideo(w http.ResponseWriter, r *http.Request) {
	var req videoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", models.ErrInvalidInput))
		return
	}

	frame, _, err := emotion.DecodeFrame(req.ImageData)
	if err != nil {
		writeError(w, err)
		return
	}

	if h.emotions == nil {
		writeError(w, fmt.Errorf("%w: face analysis", models.ErrCollaboratorUnavailable))
		return
	}

	dist, err := h.emotions.Analyze(r.Context(), frame)
	if err != nil {
		writeError(w, err)
		return
	}

	result := mood.ClassifyEmotions(dist)

	entry, err := h.recorder.Record(r.Context(), models.HistoryEntry{
		Mood:           result.Mood,
		SentimentScore: &result.Confidence,
		Method:         models.MethodVideo,
		Confidence:     result.Confidence,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.VideoAnalysisResponse{
		Mood:                    result.Mood,
		DominantEmotion:         result.DominantEmotion,
		Confidence:              result.Confidence,
		AllEmotions:             dist,
		WellnessRecommendations: h.catalog.WellnessFor(result.Mood),
		Timestamp:               entry.Timestamp,
	})
}

type travelRequest struct {
	Mood string `json:"mood"`
}

// TravelRecommendations handles POST /api/v1/recommendations/travel. The
// requested label is echoed back; unknown labels resolve to the neutral list.
func (h *Handlers) TravelRecommendations(w http.ResponseWriter, r *http.Request) {
	var req travelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", models.ErrInvalidInput))
		return
	}

	requested := models.MoodLabel(strings.TrimSpace(req.Mood))
	if requested == "" {
		requested = models.MoodNeutral
	}

	destinations := h.catalog.TravelFor(requested)

	writeJSON(w, http.StatusOK, models.TravelResponse{
		Mood:         requested,
		Destinations: destinations,
		TotalCount:   len(destinations),
	})
}

// History handles GET /api/v1/history, returning the 50 most recent entries.
func (h *Handlers) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.recorder.Recent(r.Context(), history.DefaultLimit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{History: entries})
}

// SetEmotionHealth attaches the background health flag for the face-emotion
// collaborator so /healthz can report it.
func (h *Handlers) SetEmotionHealth(healthy *atomic.Bool) {
	h.emotionHealthy = healthy
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	faceStatus := "disabled"
	if h.emotions != nil {
		faceStatus = "ok"
		if h.emotionHealthy != nil && !h.emotionHealthy.Load() {
			faceStatus = "degraded"
		}
	}

	transcriptionStatus := "disabled"
	if h.transcriber != nil {
		transcriptionStatus = "ok"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":        "ok",
		"face_analysis": faceStatus,
		"transcription": transcriptionStatus,
	})
}
