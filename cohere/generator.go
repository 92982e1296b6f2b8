package cohere

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/datar-psa/gostory/api"
)

const providerName = "cohere"

// Generator sends prompts to the Cohere chat API and returns the generated text
type Generator struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithHTTPClient sets the HTTP client used for requests.
// The default is http.DefaultClient, which has no timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Generator) {
		g.client = client
	}
}

// WithLogger sets the logger failure diagnostics are written to.
// The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a new Cohere generator
// cfg: usually DefaultConfig() or ConfigFromEnv() with overrides applied
func NewGenerator(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg.withDefaults(),
		client: http.DefaultClient,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.client == nil {
		g.client = http.DefaultClient
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

type chatRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Text string `json:"text"`
}

// Generate implements LLMGenerator.Generate
// The prompt is forwarded as-is. Every failure is logged and returned as *api.GenerationError.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := encodeRequest(chatRequest{
		Model:       g.cfg.Model,
		Message:     prompt,
		Temperature: *g.cfg.Temperature,
	})
	if err != nil {
		return "", g.transportError(ctx, fmt.Errorf("encode request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Endpoint, body)
	if err != nil {
		return "", g.transportError(ctx, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", g.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", g.transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := prettyJSON(raw)
		g.logger.ErrorContext(ctx, "cohere API error",
			slog.Int("status", resp.StatusCode),
			slog.String("data", detail),
		)
		return "", &api.GenerationError{
			Provider:   providerName,
			Kind:       api.KindRemote,
			StatusCode: resp.StatusCode,
			Detail:     detail,
		}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil || out.Text == "" {
		detail := prettyJSON(raw)
		g.logger.ErrorContext(ctx, "cohere returned no text", slog.String("data", detail))
		return "", &api.GenerationError{
			Provider:   providerName,
			Kind:       api.KindEmptyResult,
			StatusCode: resp.StatusCode,
			Detail:     detail,
			Err:        err,
		}
	}

	return out.Text, nil
}

// transportError covers every failure where no response was received, including
// requests that could not be built
func (g *Generator) transportError(ctx context.Context, err error) error {
	g.logger.ErrorContext(ctx, "error from cohere", slog.String("error", err.Error()))
	return &api.GenerationError{
		Provider: providerName,
		Kind:     api.KindTransport,
		Detail:   err.Error(),
		Err:      err,
	}
}

// encodeRequest marshals v without HTML escaping so prompts reach the API unchanged
func encodeRequest(v any) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf, nil
}

// prettyJSON indents raw with two spaces, falling back to the raw text when it is not JSON
func prettyJSON(raw []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, bytes.TrimSpace(raw), "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}

// Verify that Generator implements LLMGenerator
var _ api.LLMGenerator = (*Generator)(nil)
