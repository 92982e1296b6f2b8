package testutils

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	language "cloud.google.com/go/language/apiv1"
	"github.com/areknoster/hypert"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/genai"

	"github.com/datar-psa/gostory/cohere"
	"github.com/datar-psa/gostory/gemini"
)

// ShouldUpdate returns true if tests should update cached HTTP responses
// Set UPDATE_TESTS=true environment variable to update cached responses
func ShouldUpdate() bool {
	return os.Getenv("UPDATE_TESTS") == "true"
}

// HypertClientConfig configures hypert client creation
type HypertClientConfig struct {
	TestDataDir string
	SubDir      string // Optional subdirectory for organizing test data
}

func (c HypertClientConfig) dir() string {
	if c.SubDir != "" {
		return filepath.Join(c.TestDataDir, c.SubDir)
	}
	return c.TestDataDir
}

// SkipWithoutRecordings skips the test when there is nothing to replay and
// recording is not enabled
func SkipWithoutRecordings(t *testing.T, config HypertClientConfig) {
	t.Helper()
	if ShouldUpdate() {
		return
	}
	entries, err := os.ReadDir(config.dir())
	if err != nil || len(entries) == 0 {
		t.Skipf("no recorded responses in %s; run with UPDATE_TESTS=true to record", config.dir())
	}
}

// NewHypertClient creates a new hypert client for caching HTTP requests
// This is useful for integration tests that make external API calls
func NewHypertClient(t *testing.T, config HypertClientConfig) *http.Client {
	namingScheme, err := hypert.NewContentHashNamingScheme(config.dir())
	if err != nil {
		t.Fatalf("failed to create naming scheme: %v", err)
	}

	return hypert.TestClient(t, ShouldUpdate(),
		hypert.WithNamingScheme(namingScheme),
		hypert.WithRequestValidator(hypert.ComposedRequestValidator(
			hypert.PathValidator(),
			hypert.QueryParamsValidator(),
			hypert.MethodValidator(),
		)),
	)
}

// newGoogleHypertClient wraps the hypert client with application default credentials in record mode
func newGoogleHypertClient(t *testing.T, config HypertClientConfig) *http.Client {
	hypertClient := NewHypertClient(t, config)
	if !ShouldUpdate() {
		return hypertClient
	}

	ctx := context.Background()
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		t.Fatalf("failed to get default credentials: %v", err)
	}
	return oauth2.NewClient(context.WithValue(ctx, oauth2.HTTPClient, hypertClient), creds.TokenSource)
}

// NewCohereGenerator creates a Cohere generator whose requests are recorded/replayed by hypert
// The API key is only read from COHERE_API_KEY in record mode
func NewCohereGenerator(t *testing.T, subDir string) *cohere.Generator {
	cfg := cohere.DefaultConfig()
	if ShouldUpdate() {
		cfg.APIKey = os.Getenv(cohere.APIKeyEnv)
		if cfg.APIKey == "" {
			t.Fatalf("%s is required to record responses", cohere.APIKeyEnv)
		}
	}

	client := NewHypertClient(t, HypertClientConfig{TestDataDir: "testdata", SubDir: subDir})
	return cohere.NewGenerator(cfg, cohere.WithHTTPClient(client))
}

// GeminiTestConfig configures Gemini client creation for tests
type GeminiTestConfig struct {
	Project  string
	Location string
	SubDir   string // Subdirectory for hypert test data
}

// DefaultGeminiTestConfig returns a default configuration for Gemini testing
func DefaultGeminiTestConfig(subDir string) GeminiTestConfig {
	return GeminiTestConfig{
		Project:  os.Getenv("GOOGLE_PROJECT_ID"),
		Location: os.Getenv("GOOGLE_REGION"),
		SubDir:   subDir,
	}
}

// NewGeminiClient creates a new Gemini client for testing with hypert caching
func NewGeminiClient(t *testing.T, config GeminiTestConfig) *genai.Client {
	ctx := context.Background()

	httpClient := newGoogleHypertClient(t, HypertClientConfig{
		TestDataDir: "testdata",
		SubDir:      config.SubDir,
	})

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:    genai.BackendVertexAI,
		Project:    config.Project,
		Location:   config.Location,
		HTTPClient: httpClient,
	})
	if err != nil {
		t.Fatalf("failed to create genai client: %v", err)
	}

	return genaiClient
}

// NewGeminiGenerator creates a new Gemini generator for testing
func NewGeminiGenerator(t *testing.T, config GeminiTestConfig, modelName string) *gemini.Generator {
	return gemini.NewGenerator(NewGeminiClient(t, config), modelName)
}

// NewLanguageClient creates a Cloud Natural Language REST client backed by hypert
func NewLanguageClient(t *testing.T, subDir string) *language.Client {
	httpClient := newGoogleHypertClient(t, HypertClientConfig{
		TestDataDir: "testdata",
		SubDir:      subDir,
	})

	client, err := language.NewRESTClient(context.Background(), option.WithHTTPClient(httpClient))
	if err != nil {
		t.Fatalf("failed to create language client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	return client
}
