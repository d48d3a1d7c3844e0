// Package config handles loading and validating the vaani configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the vaani daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
	GRPC GRPCConfig `mapstructure:"grpc"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`

	// StaticDir is an optional directory of page assets served at "/".
	// Empty disables static serving.
	StaticDir string `mapstructure:"static_dir"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// ProviderConfig holds the external speech provider settings.
type ProviderConfig struct {
	// BaseURL is the provider API root (e.g. "https://api.sarvam.ai").
	BaseURL string `mapstructure:"base_url"`

	// APIKey authenticates every provider call. Usually "${SARVAM_API_KEY}".
	APIKey string `mapstructure:"api_key"`

	STTModel       string `mapstructure:"stt_model"`
	TranslateModel string `mapstructure:"translate_model"`
	TTSModel       string `mapstructure:"tts_model"`

	// Timeout bounds every provider call. Zero disables the deadline.
	Timeout time.Duration `mapstructure:"timeout"`
}

// PipelineConfig holds orchestrator tunables.
type PipelineConfig struct {
	// ChunkMaxChars caps the text length of a single synthesis call.
	ChunkMaxChars int `mapstructure:"chunk_max_chars"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./vaani.yaml, ./configs/vaani.yaml, /etc/vaani/vaani.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 3000)
	v.SetDefault("transports.http.static_dir", "")
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("provider.base_url", "https://api.sarvam.ai")
	v.SetDefault("provider.api_key", "${SARVAM_API_KEY}")
	v.SetDefault("provider.stt_model", "saarika:v2.5")
	v.SetDefault("provider.translate_model", "mayura:v1")
	v.SetDefault("provider.tts_model", "bulbul:v3")
	v.SetDefault("provider.timeout", "60s")
	v.SetDefault("pipeline.chunk_max_chars", 900)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("vaani")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/vaani")
	}

	// Environment variables: VAANI_TRANSPORTS_HTTP_PORT, VAANI_PROVIDER_API_KEY, etc.
	v.SetEnvPrefix("VAANI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${SARVAM_API_KEY}")
	// An unset variable resolves to empty so the missing credential is caught
	// at startup instead of leaking the placeholder into request headers.
	cfg.Provider.APIKey = resolveEnvRef(cfg.Provider.APIKey)

	return &cfg, nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
