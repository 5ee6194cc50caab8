package config

import "time"

type Config struct {
	Port        string
	Environment string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string

	// "model" asks the provider, "pattern" uses the regex scorer
	LanguageDetection string

	RequestTimeout     time.Duration
	ValidationCacheTTL time.Duration

	// ulule limiter format, e.g. "60-M"
	RateLimit string
	RedisURL  string

	CORSOrigins []string
}

// reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
