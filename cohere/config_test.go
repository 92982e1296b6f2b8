package cohere

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")

	cfg := ConfigFromEnv()
	if cfg.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.APIKey)
	}
	if cfg.Endpoint != DefaultEndpoint || cfg.Model != DefaultModel || cfg.Temperature != nil {
		t.Errorf("ConfigFromEnv() = %+v, want defaults", cfg)
	}
}

func TestNewGenerator_FillsMissingDefaults(t *testing.T) {
	g := NewGenerator(Config{APIKey: "k"})
	if g.cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q", g.cfg.Endpoint)
	}
	if g.cfg.Model != DefaultModel {
		t.Errorf("Model = %q", g.cfg.Model)
	}
	if g.cfg.Temperature == nil || *g.cfg.Temperature != DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", g.cfg.Temperature, DefaultTemperature)
	}
	if g.client == nil || g.logger == nil {
		t.Error("NewGenerator() left client or logger nil")
	}
}

func TestNewGenerator_Temperature(t *testing.T) {
	tests := []struct {
		name string
		set  *float64
		want float64
	}{
		{name: "unset uses default", set: nil, want: DefaultTemperature},
		{name: "explicit zero", set: ptr(0), want: 0},
		{name: "explicit value", set: ptr(0.3), want: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{APIKey: "k", Temperature: tt.set}
			g := NewGenerator(cfg)
			if got := *g.cfg.Temperature; got != tt.want {
				t.Errorf("Temperature = %v, want %v", got, tt.want)
			}
			if tt.set != nil {
				*tt.set = 42
				if got := *g.cfg.Temperature; got != tt.want {
					t.Errorf("Generator shares caller's Temperature pointer: got %v", got)
				}
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(APIKeyEnv+"=dotenv-key\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Run("loads file", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		os.Unsetenv(APIKeyEnv)
		if err := LoadEnv(path); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv(APIKeyEnv); got != "dotenv-key" {
			t.Errorf("%s = %q, want dotenv-key", APIKeyEnv, got)
		}
	})

	t.Run("does not override", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "already-set")
		if err := LoadEnv(path); err != nil {
			t.Fatalf("LoadEnv() error = %v", err)
		}
		if got := os.Getenv(APIKeyEnv); got != "already-set" {
			t.Errorf("%s = %q, want already-set", APIKeyEnv, got)
		}
	})

	t.Run("missing file is ignored", func(t *testing.T) {
		if err := LoadEnv(filepath.Join(dir, "nope.env")); err != nil {
			t.Errorf("LoadEnv() error = %v, want nil", err)
		}
	})
}
