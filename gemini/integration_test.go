package gemini_test

import (
	"context"
	"testing"

	"github.com/datar-psa/gostory/gemini"
	"github.com/datar-psa/gostory/internal/testutils"
)

// TestGenerator_Integration tests the Gemini generator with real API calls
// This test requires valid Google Cloud credentials and uses hypert to cache requests
func TestGenerator_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testutils.SkipWithoutRecordings(t, testutils.HypertClientConfig{TestDataDir: "testdata", SubDir: "generate"})

	g := testutils.NewGeminiGenerator(t, testutils.DefaultGeminiTestConfig("generate"), "publishers/google/models/gemini-2.5-flash")

	got, err := g.Generate(context.Background(), "Write a two sentence bedtime story about a lighthouse keeper.")
	if err != nil {
		t.Fatalf("Generate() unexpected error = %v", err)
	}
	if got == "" {
		t.Error("Generate() returned empty text")
	}
}

// TestGoogleLanguageProvider_Integration moderates a harmless story with the Natural Language API
func TestGoogleLanguageProvider_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testutils.SkipWithoutRecordings(t, testutils.HypertClientConfig{TestDataDir: "testdata", SubDir: "moderation"})

	p := gemini.NewGoogleLanguageProvider(testutils.NewLanguageClient(t, "moderation"))

	result, err := p.Moderate(context.Background(), "The lighthouse keeper waved at the passing ships and went to sleep.")
	if err != nil {
		t.Fatalf("Moderate() unexpected error = %v", err)
	}
	if len(result.Categories) == 0 {
		t.Fatal("Moderate() returned no categories")
	}
	if flagged := result.Above(0.5); len(flagged) > 0 {
		t.Errorf("harmless story flagged: %+v", flagged)
	}
}
