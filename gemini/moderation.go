package gemini

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv1"
	languagepb "cloud.google.com/go/language/apiv1/languagepb"
	"github.com/googleapis/gax-go/v2"

	"github.com/datar-psa/gostory/api"
)

// textModerator is the part of *language.Client the provider needs
type textModerator interface {
	ModerateText(ctx context.Context, req *languagepb.ModerateTextRequest, opts ...gax.CallOption) (*languagepb.ModerateTextResponse, error)
}

// GoogleLanguageProvider implements ModerationProvider using Google Cloud Natural Language API client
type GoogleLanguageProvider struct {
	client textModerator
}

// NewGoogleLanguageProvider creates a new provider using a preconfigured *language.Client (auth handled by caller)
func NewGoogleLanguageProvider(client *language.Client) *GoogleLanguageProvider {
	if client == nil {
		return &GoogleLanguageProvider{}
	}
	return &GoogleLanguageProvider{client: client}
}

// Moderate analyzes generated text for safety using Google Cloud Natural Language API
func (p *GoogleLanguageProvider) Moderate(ctx context.Context, content string) (*api.ModerationResult, error) {
	if p.client == nil {
		return nil, fmt.Errorf("language client is required")
	}

	resp, err := p.client.ModerateText(ctx, &languagepb.ModerateTextRequest{
		Document: &languagepb.Document{
			Type: languagepb.Document_PLAIN_TEXT,
			Source: &languagepb.Document_Content{
				Content: content,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("moderate text failed: %w", err)
	}

	categories := make([]api.ModerationCategory, 0, len(resp.GetModerationCategories()))
	for _, c := range resp.GetModerationCategories() {
		categories = append(categories, api.ModerationCategory{
			Name:       categoryName(c.GetName()),
			Confidence: float64(c.GetConfidence()),
		})
	}

	return &api.ModerationResult{Categories: categories}, nil
}

// googleCategoryNames maps Natural Language API category names that differ from api.ModerationCategories
var googleCategoryNames = map[string]string{
	"Death, Harm & Tragedy": "DeathHarmTragedy",
	"Firearms & Weapons":    "FirearmsWeapons",
	"Public Safety":         "PublicSafety",
	"Religion & Belief":     "ReligionBelief",
	"Illicit Drugs":         "IllicitDrugs",
	"War & Conflict":        "WarConflict",
}

// categoryName returns the developer-friendly name; unknown names pass through unchanged
func categoryName(googleCategory string) string {
	if name, ok := googleCategoryNames[googleCategory]; ok {
		return name
	}
	return googleCategory
}

var _ api.ModerationProvider = (*GoogleLanguageProvider)(nil)
