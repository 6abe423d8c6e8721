package models

// Destination is one travel recommendation from the static catalog.
type Destination struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Activities  []string `json:"activities"`
	Season      string   `json:"season"`
	MoodMatch   string   `json:"mood_match"`
}
