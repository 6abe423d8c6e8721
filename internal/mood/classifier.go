// Package mood normalizes modality-specific raw scores into the canonical
// mood taxonomy. All classification functions are pure and total: they never
// fail, and identical input always produces identical output.
package mood

import (
	"sort"
	"strings"

	"github.com/moodlens/moodlens/internal/models"
)

const (
	// Compound-score thresholds, inclusive toward happy/sad.
	positiveThreshold = 0.05
	negativeThreshold = -0.05

	// Minimum negative component before the anger keyword refinement applies.
	angerNegativeFloor = 0.3
)

// canonicalEmotionOrder fixes the tie-break order for dominant-emotion
// selection. Unknown emotions sort lexicographically after these.
var canonicalEmotionOrder = []string{
	"angry", "disgust", "fear", "happy", "neutral", "sad", "surprise",
}

// emotionToMood maps face-emotion names onto the taxonomy. Emotions not in
// this table fall back to neutral.
var emotionToMood = map[string]models.MoodLabel{
	"happy":    models.MoodHappy,
	"sad":      models.MoodSad,
	"angry":    models.MoodAngry,
	"fear":     models.MoodAnxious,
	"surprise": models.MoodSurprised,
	"disgust":  models.MoodAngry,
	"neutral":  models.MoodNeutral,
}

// ClassifyText maps a sentiment score to a mood. The raw text is consulted
// only for the anger refinement: a strongly negative score whose text
// mentions "angry" or "mad" classifies as angry rather than sad.
func ClassifyText(score models.SentimentScore, text string) models.ClassificationResult {
	s := score
	result := models.ClassificationResult{
		Mood:       models.MoodNeutral,
		Confidence: abs(score.Compound),
		Sentiment:  &s,
	}

	switch {
	case score.Compound >= positiveThreshold:
		result.Mood = models.MoodHappy
	case score.Compound <= negativeThreshold:
		lower := strings.ToLower(text)
		if score.Negative > angerNegativeFloor &&
			(strings.Contains(lower, "angry") || strings.Contains(lower, "mad")) {
			result.Mood = models.MoodAngry
		} else {
			result.Mood = models.MoodSad
		}
	}

	return result
}

// ClassifyVoiceText maps the sentiment score of a transcript to a mood.
// The voice path carries no keyword refinement, so only happy, sad and
// neutral are reachable from transcribed speech.
func ClassifyVoiceText(score models.SentimentScore) models.ClassificationResult {
	s := score
	result := models.ClassificationResult{
		Mood:       models.MoodNeutral,
		Confidence: abs(score.Compound),
		Sentiment:  &s,
	}

	switch {
	case score.Compound >= positiveThreshold:
		result.Mood = models.MoodHappy
	case score.Compound <= negativeThreshold:
		result.Mood = models.MoodSad
	}

	return result
}

// ClassifyEmotions picks the dominant emotion from an ordered distribution
// and maps it onto the taxonomy. Ties keep the earlier slice entry, so a
// distribution built with OrderDistribution breaks ties in canonical order.
// Confidence is the dominant weight scaled from 0-100 and clamped to [0, 1].
func ClassifyEmotions(dist []models.EmotionScore) models.ClassificationResult {
	if len(dist) == 0 {
		return models.ClassificationResult{Mood: models.MoodNeutral}
	}

	dominant := dist[0]
	for _, e := range dist[1:] {
		if e.Score > dominant.Score {
			dominant = e
		}
	}

	mood, ok := emotionToMood[dominant.Emotion]
	if !ok {
		mood = models.MoodNeutral
	}

	return models.ClassificationResult{
		Mood:            mood,
		Confidence:      clamp01(dominant.Score / 100.0),
		DominantEmotion: dominant.Emotion,
		Emotions:        dist,
	}
}

// OrderDistribution converts a collaborator's emotion/weight mapping into a
// deterministically ordered slice: canonical emotions first, then any others
// sorted by name.
func OrderDistribution(weights map[string]float64) []models.EmotionScore {
	dist := make([]models.EmotionScore, 0, len(weights))
	seen := make(map[string]bool, len(canonicalEmotionOrder))

	for _, name := range canonicalEmotionOrder {
		if w, ok := weights[name]; ok {
			dist = append(dist, models.EmotionScore{Emotion: name, Score: w})
			seen[name] = true
		}
	}

	var extra []string
	for name := range weights {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		dist = append(dist, models.EmotionScore{Emotion: name, Score: weights[name]})
	}

	return dist
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
