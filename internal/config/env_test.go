package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "OPENAI_API_KEY", "OPENAI_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL",
		"LANGUAGE_DETECTION", "REQUEST_TIMEOUT", "VALIDATION_CACHE_TTL", "RATE_LIMIT", "REDIS_URL", "CORS_ORIGINS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, DetectionModel, cfg.LanguageDetection)
	assert.Equal(t, 3*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, "60-M", cfg.RateLimit)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvironmentVariables_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LANGUAGE_DETECTION", "Pattern")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT", "10-S")
	t.Setenv("CORS_ORIGINS", "https://a.dev, ,https://b.dev")

	cfg, err := LoadEnvironmentVariables()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.Equal(t, DetectionPattern, cfg.LanguageDetection)
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins)
}

func TestLoadEnvironmentVariables_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"bad timeout", "REQUEST_TIMEOUT", "soon", "REQUEST_TIMEOUT"},
		{"negative ttl", "VALIDATION_CACHE_TTL", "-1m", "VALIDATION_CACHE_TTL"},
		{"bad detection", "LANGUAGE_DETECTION", "guess", "LANGUAGE_DETECTION"},
		{"bad rate", "RATE_LIMIT", "lots", "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadEnvironmentVariables()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
