package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SARVAM_API_KEY", "test-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if !cfg.Transports.HTTP.Enabled || cfg.Transports.HTTP.Port != 3000 {
		t.Errorf("http transport defaults: %+v", cfg.Transports.HTTP)
	}
	if cfg.Transports.GRPC.Enabled {
		t.Error("grpc transport should default to disabled")
	}
	if cfg.Provider.BaseURL != "https://api.sarvam.ai" {
		t.Errorf("provider base_url = %q", cfg.Provider.BaseURL)
	}
	if cfg.Provider.STTModel != "saarika:v2.5" || cfg.Provider.TranslateModel != "mayura:v1" || cfg.Provider.TTSModel != "bulbul:v3" {
		t.Errorf("model defaults: %+v", cfg.Provider)
	}
	if cfg.Provider.Timeout != 60*time.Second {
		t.Errorf("provider timeout = %v", cfg.Provider.Timeout)
	}
	if cfg.Pipeline.ChunkMaxChars != 900 {
		t.Errorf("chunk_max_chars = %d", cfg.Pipeline.ChunkMaxChars)
	}

	// The ${SARVAM_API_KEY} placeholder resolves from the environment.
	if cfg.Provider.APIKey != "test-secret" {
		t.Errorf("api key not resolved from env: %q", cfg.Provider.APIKey)
	}
}

func TestResolveEnvRef(t *testing.T) {
	t.Setenv("VAANI_TEST_SECRET", "value")

	tests := []struct {
		in   string
		want string
	}{
		{"${VAANI_TEST_SECRET}", "value"},
		{"${VAANI_TEST_UNSET}", ""},
		{"literal-key", "literal-key"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveEnvRef(tt.in); got != tt.want {
			t.Errorf("resolveEnvRef(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
