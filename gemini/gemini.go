package gemini

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genai"

	"github.com/datar-psa/gostory/api"
)

const providerName = "gemini"

// Generator wraps a genai.Client to implement the LLMGenerator interface
type Generator struct {
	client    *genai.Client
	modelName string
	logger    *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger failure diagnostics are written to.
// The default is slog.Default(); a nil logger keeps it.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a new Gemini generator
// client: genai.Client from google.golang.org/genai
// modelName: the model to use (e.g., "gemini-2.5-flash")
func NewGenerator(client *genai.Client, modelName string, opts ...Option) *Generator {
	g := &Generator{
		client:    client,
		modelName: modelName,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate implements LLMGenerator.Generate
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	content := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}

	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		[]*genai.Content{content},
		&genai.GenerateContentConfig{},
	)
	if err != nil {
		return "", g.classify(ctx, err)
	}

	text, reason := firstText(resp)
	if text == "" {
		g.logger.ErrorContext(ctx, "gemini returned no text", slog.String("reason", reason))
		return "", &api.GenerationError{
			Provider: providerName,
			Kind:     api.KindEmptyResult,
			Detail:   reason,
		}
	}

	return text, nil
}

// classify maps SDK errors onto the generation error taxonomy
func (g *Generator) classify(ctx context.Context, err error) error {
	if apiErr, ok := asAPIError(err); ok {
		g.logger.ErrorContext(ctx, "gemini API error",
			slog.Int("status", apiErr.Code),
			slog.String("data", apiErr.Message),
		)
		return &api.GenerationError{
			Provider:   providerName,
			Kind:       api.KindRemote,
			StatusCode: apiErr.Code,
			Detail:     apiErr.Message,
			Err:        err,
		}
	}

	g.logger.ErrorContext(ctx, "error from gemini", slog.String("error", err.Error()))
	return &api.GenerationError{
		Provider: providerName,
		Kind:     api.KindTransport,
		Detail:   err.Error(),
		Err:      err,
	}
}

// asAPIError extracts a genai.APIError whether the SDK returned it by value or by pointer
func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}
	return genai.APIError{}, false
}

// firstText returns the text of the first candidate's first part, or why there is none
func firstText(resp *genai.GenerateContentResponse) (string, string) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", "no candidates returned"
	}
	c := resp.Candidates[0]
	if c.Content == nil || len(c.Content.Parts) == 0 {
		return "", "no parts in response"
	}
	if c.Content.Parts[0].Text == "" {
		return "", "empty text in first part"
	}
	return c.Content.Parts[0].Text, ""
}

// Verify that Generator implements LLMGenerator
var _ api.LLMGenerator = (*Generator)(nil)
