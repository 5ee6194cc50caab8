package llm

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// shared HTTP client for provider calls; no overall timeout, streams are bounded by the request context
var providerHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 60 * time.Second,
	},
}

// returns the env var that holds the API key for the given provider
func apiKeyEnv(name Name) string {
	switch name {
	case Gemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func newLimiter(pc ProviderConfig) *rate.Limiter {
	rps, burst := pc.RequestsPerSecond, pc.Burst
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	if burst <= 0 {
		burst = defaultBurst
	}

	return rate.NewLimiter(rate.Limit(rps), burst)
}

// finds the outermost {...} span in a model reply, tolerating prose or fences around it
func ExtractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")

	if start < 0 || end < start {
		return "", false
	}

	return text[start : end+1], true
}
