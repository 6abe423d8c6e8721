// Package catalog serves the static wellness and travel recommendation data.
// The catalogs are configuration, not logic: they are embedded JSON, parsed
// once at startup and immutable afterwards.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/moodlens/moodlens/internal/models"
)

//go:embed data/travel.json data/wellness.json
var dataFS embed.FS

// Catalog is the loaded recommendation data, keyed by mood label.
// Lookups for moods without an explicit entry fall back to neutral, so a
// neutral entry is required in both catalogs.
type Catalog struct {
	wellness map[models.MoodLabel][]string
	travel   map[models.MoodLabel][]models.Destination
}

func Load() (*Catalog, error) {
	c := &Catalog{}

	if err := loadJSON("data/wellness.json", &c.wellness); err != nil {
		return nil, err
	}
	if err := loadJSON("data/travel.json", &c.travel); err != nil {
		return nil, err
	}

	if _, ok := c.wellness[models.MoodNeutral]; !ok {
		return nil, fmt.Errorf("wellness catalog is missing the neutral fallback entry")
	}
	if _, ok := c.travel[models.MoodNeutral]; !ok {
		return nil, fmt.Errorf("travel catalog is missing the neutral fallback entry")
	}

	return c, nil
}

func loadJSON(path string, out any) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading catalog %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return nil
}

// WellnessFor returns the wellness tips for a mood in catalog order, falling
// back to the neutral list for moods without an entry.
func (c *Catalog) WellnessFor(mood models.MoodLabel) []string {
	if tips, ok := c.wellness[mood]; ok {
		return tips
	}
	return c.wellness[models.MoodNeutral]
}

// TravelFor returns the travel destinations for a mood in catalog order,
// falling back to the neutral list for moods without an entry.
func (c *Catalog) TravelFor(mood models.MoodLabel) []models.Destination {
	if dests, ok := c.travel[mood]; ok {
		return dests
	}
	return c.travel[models.MoodNeutral]
}
