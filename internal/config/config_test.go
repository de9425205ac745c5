package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfigFile(t, `{
		"use_llm": true,
		"llm_provider": "openai",
		"api_key": "sk-test",
		"confidence_threshold": 0.8,
		"database_url": "postgres://localhost/catalog"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.UseLLM)
	assert.Equal(t, "openai", cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.InDelta(t, 0.8, cfg.ConfidenceThreshold, 1e-9)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"use_llm": tru`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := Config{LLMProvider: "bard"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLMProvider")
}

func TestValidate_ThresholdOutOfRange(t *testing.T) {
	cfg := Config{ConfidenceThreshold: 1.5}
	assert.Error(t, cfg.Validate())
}

func TestValidate_LLMRequiresKey(t *testing.T) {
	cfg := Config{UseLLM: true}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")

	cfg.APIKey = "sk-test"
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults_FillsEmptyFields(t *testing.T) {
	cfg := Config{APIKey: "from-cli"}
	merged := cfg.MergeWithDefaults(Config{
		APIKey:      "from-file",
		DatabaseURL: "postgres://localhost/catalog",
		LLMProvider: "anthropic",
	})

	assert.Equal(t, "from-cli", merged.APIKey)
	assert.Equal(t, "postgres://localhost/catalog", merged.DatabaseURL)
	assert.Equal(t, "anthropic", merged.LLMProvider)
}

func TestMergeWithDefaults_ThresholdConstants(t *testing.T) {
	cfg := Config{}
	merged := cfg.MergeWithDefaults(Config{})

	assert.InDelta(t, DefaultConfidenceThreshold, merged.ConfidenceThreshold, 1e-9)
	assert.InDelta(t, DefaultMatchThreshold, merged.MatchThreshold, 1e-9)
	assert.Equal(t, DefaultLLMProvider, merged.LLMProvider)
}

func TestMergeWithDefaults_ExplicitValuesWin(t *testing.T) {
	cfg := Config{ConfidenceThreshold: 0.9, MatchThreshold: 0.6}
	merged := cfg.MergeWithDefaults(Config{ConfidenceThreshold: 0.5})

	assert.InDelta(t, 0.9, merged.ConfidenceThreshold, 1e-9)
	assert.InDelta(t, 0.6, merged.MatchThreshold, 1e-9)
}

func TestLoadEnv_FillsFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env/catalog")

	cfg := Config{}
	cfg.LoadEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://env/catalog", cfg.DatabaseURL)
}

func TestLoadEnv_ConfigValuesWin(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := Config{APIKey: "file-key"}
	cfg.LoadEnv()
	assert.Equal(t, "file-key", cfg.APIKey)
}
