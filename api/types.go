package api

import "context"

// LLMGenerator is an interface for generating text using an LLM
// A Cohere implementation is provided in the cohere subpackage
// and a Gemini implementation in the gemini subpackage
type LLMGenerator interface {
	// Generate generates text based on the provided prompt
	// Returns the generated text or a *GenerationError
	Generate(ctx context.Context, prompt string) (string, error)
}

// ModerationCategories contains all supported moderation category names
// These are developer-friendly names that map to Google Cloud Natural Language API categories
var ModerationCategories []string = []string{
	"Toxic",
	"Derogatory",
	"Violent",
	"Sexual",
	"Insult",
	"Profanity",
	"DeathHarmTragedy",
	"FirearmsWeapons",
	"PublicSafety",
	"Health",
	"ReligionBelief",
	"IllicitDrugs",
	"WarConflict",
	"Finance",
	"Politics",
	"Legal",
}

// ModerationCategory represents a safety category with confidence score
type ModerationCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// ModerationResult represents the result of content moderation
type ModerationResult struct {
	Categories []ModerationCategory `json:"categories"`
}

// Above returns the categories whose confidence is strictly greater than threshold
func (r *ModerationResult) Above(threshold float64) []ModerationCategory {
	if r == nil {
		return nil
	}
	var flagged []ModerationCategory
	for _, c := range r.Categories {
		if c.Confidence > threshold {
			flagged = append(flagged, c)
		}
	}
	return flagged
}

// ModerationProvider is an interface for content moderation
// A Google Cloud Natural Language implementation is provided in the gemini subpackage
type ModerationProvider interface {
	// Moderate analyzes content for safety and returns moderation results
	Moderate(ctx context.Context, content string) (*ModerationResult, error)
}
