package gostory

import (
	"context"
	"log/slog"
	"net/http"

	language "cloud.google.com/go/language/apiv1"
	"google.golang.org/genai"

	"github.com/datar-psa/gostory/api"
	"github.com/datar-psa/gostory/cohere"
	"github.com/datar-psa/gostory/gemini"
	"github.com/datar-psa/gostory/safety"
)

// Story is the result of a successful Tell
type Story struct {
	// Text is the generated text, returned verbatim
	Text string
	// Moderation is set when a moderation provider is configured
	Moderation *ModerationResult
}

// StoryTeller wraps an LLM generator and an optional moderation provider.
// It holds no mutable state and is safe for concurrent use.
type StoryTeller struct {
	llm  api.LLMGenerator
	gate *safety.Gate
}

// StoryTellerOptions configures StoryTeller creation
type StoryTellerOptions struct {
	llm        api.LLMGenerator
	moderation api.ModerationProvider
	gate       safety.GateOptions
}

// WithLLMGenerator sets the LLM generator for the story teller
func WithLLMGenerator(llm api.LLMGenerator) func(*StoryTellerOptions) {
	return func(opts *StoryTellerOptions) {
		opts.llm = llm
	}
}

// WithModerationProvider sets the moderation provider generated stories are checked with
func WithModerationProvider(provider api.ModerationProvider) func(*StoryTellerOptions) {
	return func(opts *StoryTellerOptions) {
		opts.moderation = provider
	}
}

// WithModerationThreshold sets the confidence above which a category flags a story (default 0.5)
func WithModerationThreshold(threshold float64) func(*StoryTellerOptions) {
	return func(opts *StoryTellerOptions) {
		opts.gate.Threshold = threshold
	}
}

// WithModerationCategories restricts which categories can flag a story (empty = all)
func WithModerationCategories(categories ...string) func(*StoryTellerOptions) {
	return func(opts *StoryTellerOptions) {
		opts.gate.Categories = categories
	}
}

// NewStoryTeller creates a new StoryTeller using functional options.
func NewStoryTeller(opts ...func(*StoryTellerOptions)) *StoryTeller {
	options := &StoryTellerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	st := &StoryTeller{llm: options.llm}
	if options.moderation != nil {
		st.gate = safety.NewGate(options.moderation, options.gate)
	}
	return st
}

// Tell generates a story for prompt.
// Generation errors are returned as-is so callers can inspect their kind with errors.As.
// When moderation is configured and the story is flagged, the returned error matches
// ErrContentFlagged and the Story still carries the text and moderation result.
func (s *StoryTeller) Tell(ctx context.Context, prompt string) (Story, error) {
	if s.llm == nil {
		return Story{}, ErrNoGenerator
	}

	text, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return Story{}, err
	}

	story := Story{Text: text}
	if s.gate == nil {
		return story, nil
	}

	story.Moderation, err = s.gate.Check(ctx, text)
	return story, err
}

// ProviderOptions configures the provider-backed StoryTeller constructors
type ProviderOptions struct {
	cohereConfig *cohere.Config
	httpClient   *http.Client
	logger       *slog.Logger
	genaiClient  *genai.Client
	modelName    string
	langClient   *language.Client
	extra        []func(*StoryTellerOptions)
}

// WithCohereConfig sets the Cohere configuration (default cohere.ConfigFromEnv())
func WithCohereConfig(cfg cohere.Config) func(*ProviderOptions) {
	return func(opts *ProviderOptions) {
		opts.cohereConfig = &cfg
	}
}

// WithHTTPClient sets the HTTP client for the Cohere generator
func WithHTTPClient(client *http.Client) func(*ProviderOptions) {
	return func(opts *ProviderOptions) {
		opts.httpClient = client
	}
}

// WithLogger sets the logger generation failures are reported to
func WithLogger(logger *slog.Logger) func(*ProviderOptions) {
	return func(opts *ProviderOptions) {
		opts.logger = logger
	}
}

// WithGenaiClient sets the Gemini client
func WithGenaiClient(client *genai.Client) func(*ProviderOptions) {
	return func(opts *ProviderOptions) {
		opts.genaiClient = client
	}
}

// WithModelName sets the model name. For Cohere it overrides the configured model.
func WithModelName(modelName string) func(*ProviderOptions) {
	return func(opts *ProviderOptions) {
		opts.modelName = modelName
	}
}

// WithLanguageClient sets the Google Cloud Language client for moderation
func WithLanguageClient(langClient *language.Client) func(*ProviderOptions) {
	return func(opts *ProviderOptions) {
		opts.langClient = langClient
	}
}

// WithStoryTellerOptions passes options through to NewStoryTeller
func WithStoryTellerOptions(opts ...func(*StoryTellerOptions)) func(*ProviderOptions) {
	return func(o *ProviderOptions) {
		o.extra = append(o.extra, opts...)
	}
}

func newProviderOptions(opts []func(*ProviderOptions)) *ProviderOptions {
	options := &ProviderOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

func (o *ProviderOptions) storyTellerOptions(llm api.LLMGenerator) []func(*StoryTellerOptions) {
	var stOptions []func(*StoryTellerOptions)
	if llm != nil {
		stOptions = append(stOptions, WithLLMGenerator(llm))
	}
	// Only add moderation provider if langClient is provided
	if o.langClient != nil {
		stOptions = append(stOptions, WithModerationProvider(gemini.NewGoogleLanguageProvider(o.langClient)))
	}
	return append(stOptions, o.extra...)
}

// NewCohereStoryTeller creates a StoryTeller backed by the Cohere chat API.
func NewCohereStoryTeller(opts ...func(*ProviderOptions)) *StoryTeller {
	options := newProviderOptions(opts)

	cfg := cohere.ConfigFromEnv()
	if options.cohereConfig != nil {
		cfg = *options.cohereConfig
	}
	if options.modelName != "" {
		cfg.Model = options.modelName
	}

	var genOptions []cohere.Option
	if options.httpClient != nil {
		genOptions = append(genOptions, cohere.WithHTTPClient(options.httpClient))
	}
	if options.logger != nil {
		genOptions = append(genOptions, cohere.WithLogger(options.logger))
	}

	return NewStoryTeller(options.storyTellerOptions(cohere.NewGenerator(cfg, genOptions...))...)
}

// NewGeminiStoryTeller creates a StoryTeller using Gemini client and model name.
// Example model: "publishers/google/models/gemini-2.5-flash".
func NewGeminiStoryTeller(opts ...func(*ProviderOptions)) *StoryTeller {
	options := newProviderOptions(opts)

	var llm api.LLMGenerator
	// Only add LLM generator if genaiClient and modelName are provided
	if options.genaiClient != nil && options.modelName != "" {
		llm = gemini.NewGenerator(options.genaiClient, options.modelName, gemini.WithLogger(options.logger))
	}

	return NewStoryTeller(options.storyTellerOptions(llm)...)
}
