// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Default tuning values applied by MergeWithDefaults
const (
	DefaultConfidenceThreshold = 0.75
	DefaultMatchThreshold      = 0.75
	DefaultLLMProvider         = "gemini"
)

// Config represents the ingestion configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// LLM behavior
	UseLLM                  bool    `json:"use_llm,omitempty"`
	LLMProvider             string  `json:"llm_provider,omitempty" validate:"omitempty,oneof=gemini openai anthropic"`
	APIKey                  string  `json:"api_key,omitempty"`
	FallbackToDeterministic bool    `json:"fallback_to_deterministic,omitempty"`
	ConfidenceThreshold     float64 `json:"confidence_threshold,omitempty" validate:"gte=0,lte=1"`

	// Matching
	MatchThreshold float64 `json:"match_threshold,omitempty" validate:"gte=0,lte=1"`

	// EnableOCR is reserved for scanned-PDF support; it is parsed and
	// carried but no extractor consumes it yet.
	EnableOCR bool `json:"enable_ocr,omitempty"`

	DebugMode   bool   `json:"debug_mode,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadEnv loads a .env file if one exists in the working directory and
// fills API key and database URL from the environment when the config
// leaves them empty. A missing .env file is not an error.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()

	if c.APIKey == "" {
		for _, key := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "LLM_API_KEY"} {
			if v := os.Getenv(key); v != "" {
				c.APIKey = v
				break
			}
		}
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}

// Validate checks that the configuration has valid values.
// Note: required fields are not checked here since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			return fmt.Errorf("config error: field %q failed %q validation", field.Field(), field.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.UseLLM && c.APIKey == "" {
		return fmt.Errorf("config error: 'use_llm' requires 'api_key' (or a provider API key in the environment)")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults. Thresholds fall back to the package constants when
// neither config supplies them.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.LLMProvider == "" {
		result.LLMProvider = DefaultLLMProvider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.ConfidenceThreshold == 0 {
		if defaults.ConfidenceThreshold > 0 {
			result.ConfidenceThreshold = defaults.ConfidenceThreshold
		} else {
			result.ConfidenceThreshold = DefaultConfidenceThreshold
		}
	}
	if result.MatchThreshold == 0 {
		if defaults.MatchThreshold > 0 {
			result.MatchThreshold = defaults.MatchThreshold
		} else {
			result.MatchThreshold = DefaultMatchThreshold
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
