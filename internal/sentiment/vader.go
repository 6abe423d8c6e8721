// Package sentiment wraps the VADER polarity scorer used by the text and
// voice analysis paths.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/moodlens/moodlens/internal/models"
)

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

// Analyzer scores text polarity. Construct one at startup and share it;
// scoring is read-only and safe for concurrent use.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{sia: govader.NewSentimentIntensityAnalyzer()}
}

// Score normalizes the input (markdown flattened, links stripped) and returns
// its polarity scores.
func (a *Analyzer) Score(text string) models.SentimentScore {
	s := a.sia.PolarityScores(NormalizeText(text))

	return models.SentimentScore{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}

// RemoveLinks strips markdown links (keeping the link text) and bare URLs,
// which would otherwise skew the lexicon scoring.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// NormalizeText flattens markdown to plain text and strips links so the
// scorer only sees prose.
func NormalizeText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}
