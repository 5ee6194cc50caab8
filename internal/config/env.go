package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ulule/limiter/v3"
)

const (
	defaultPort               = "8080"
	defaultOpenAIModel        = "gpt-4o-mini"
	defaultGeminiModel        = "gemini-1.5-flash"
	defaultRequestTimeout     = 3 * time.Minute
	defaultValidationCacheTTL = 10 * time.Minute
	defaultRateLimit          = "60-M"

	DetectionModel   = "model"
	DetectionPattern = "pattern"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	cfg := &Config{
		Port:              getEnv("PORT", defaultPort),
		Environment:       getEnv("ENVIRONMENT", "development"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", defaultOpenAIModel),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		GeminiKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:       getEnv("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL:     os.Getenv("GEMINI_BASE_URL"),
		LanguageDetection: strings.ToLower(getEnv("LANGUAGE_DETECTION", DetectionModel)),
		RateLimit:         getEnv("RATE_LIMIT", defaultRateLimit),
		RedisURL:          os.Getenv("REDIS_URL"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error

	cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	cfg.ValidationCacheTTL, err = getDuration("VALIDATION_CACHE_TTL", defaultValidationCacheTTL)
	if err != nil {
		return nil, err
	}

	if cfg.LanguageDetection != DetectionModel && cfg.LanguageDetection != DetectionPattern {
		return nil, fmt.Errorf("LANGUAGE_DETECTION must be %q or %q, got %q", DetectionModel, DetectionPattern, cfg.LanguageDetection)
	}

	if _, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT %q: %w", cfg.RateLimit, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}

	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}

	return d, nil
}

// splits a comma separated list, dropping blanks
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
