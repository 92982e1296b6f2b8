package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	language "cloud.google.com/go/language/apiv1"
	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/datar-psa/gostory"
	"github.com/datar-psa/gostory/cohere"
	"github.com/datar-psa/gostory/internal/logging"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

type cli struct {
	Prompt string `arg:"" help:"Prompt describing the story to generate"`

	// Generator config
	Provider    string  `help:"Text generation backend" enum:"cohere,gemini" default:"cohere"`
	Model       string  `help:"Model identifier (provider default when empty)" default:""`
	Temperature float64 `help:"Sampling temperature for cohere" default:"0.8"`
	Endpoint    string  `help:"Cohere chat endpoint" default:"https://api.cohere.ai/v1/chat"`

	// Moderation config
	Moderate  bool    `help:"Check the story with Google Cloud Natural Language moderation"`
	Threshold float64 `help:"Moderation confidence threshold" default:"0.5"`

	// Runtime config
	EnvFile  string `help:"Environment file loaded before reading API keys" default:".env" type:"path"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("gostory"),
		kong.Description("Generate a story from a prompt."),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.FatalIfErrorf(run(ctx, &c, os.Stdout))
}

func run(ctx context.Context, c *cli, stdout io.Writer) error {
	logger := logging.New(c.LogLevel, os.Stderr)

	if err := cohere.LoadEnv(c.EnvFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	opts := []func(*gostory.ProviderOptions){
		gostory.WithLogger(logger),
		gostory.WithStoryTellerOptions(gostory.WithModerationThreshold(c.Threshold)),
	}

	if c.Moderate {
		langClient, err := language.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("create language client: %w", err)
		}
		defer langClient.Close()
		opts = append(opts, gostory.WithLanguageClient(langClient))
	}

	var teller *gostory.StoryTeller
	switch c.Provider {
	case "gemini":
		model := c.Model
		if model == "" {
			model = "gemini-2.5-flash"
		}
		genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  os.Getenv(geminiAPIKeyEnv),
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("create genai client: %w", err)
		}
		opts = append(opts, gostory.WithGenaiClient(genaiClient), gostory.WithModelName(model))
		teller = gostory.NewGeminiStoryTeller(opts...)
	default:
		cfg := cohere.ConfigFromEnv()
		cfg.Endpoint = c.Endpoint
		cfg.Temperature = &c.Temperature
		if c.Model != "" {
			cfg.Model = c.Model
		}
		opts = append(opts, gostory.WithCohereConfig(cfg))
		teller = gostory.NewCohereStoryTeller(opts...)
	}

	story, err := teller.Tell(ctx, c.Prompt)
	if err != nil {
		var genErr *gostory.GenerationError
		if errors.As(err, &genErr) {
			return fmt.Errorf("%w (%s)", err, genErr.Kind)
		}
		return err
	}

	_, err = fmt.Fprintln(stdout, story.Text)
	return err
}
