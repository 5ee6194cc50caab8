// Package validator asks a provider whether a request is on-topic for a tool.
//
// Validation is advisory: any malfunction (transport error, empty reply,
// unparsable JSON) lets the request through.
package validator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/logger"
	"codeberg.org/devassist/server/internal/metrics"
	"github.com/patrickmn/go-cache"
)

const (
	systemPrompt = "You are a JSON-only response assistant. Always respond with valid JSON only."

	validationTemperature = 0.3
	validationMaxTokens   = 200
)

// per-tool validation settings
type Policy struct {
	Tool string

	// minimum relevance (0-100) for a request to pass
	Threshold int

	// used when the model rejects without a message
	RejectMessage string

	BuildPrompt func(input string) string
}

type Result struct {
	IsValid   bool
	Relevance int
	Message   string
}

var errEmptyReply = errors.New("empty validation reply")

type Validator struct {
	cache *cache.Cache
}

// creates a validator caching results for ttl; zero ttl disables caching
func New(ttl time.Duration) *Validator {
	v := &Validator{}

	if ttl > 0 {
		v.cache = cache.New(ttl, 2*ttl)
	}

	return v
}

func (v *Validator) Validate(ctx context.Context, provider llm.Provider, policy Policy, input string) Result {
	key := cacheKey(policy.Tool, provider.Name(), input)

	if v.cache != nil {
		if cached, ok := v.cache.Get(key); ok {
			if result, ok := cached.(Result); ok {
				metrics.ValidationCacheHits.Inc()
				return result
			}
		}
	}

	result, err := v.validate(ctx, provider, policy, input)
	if err != nil {
		logger.FromContext(ctx).Warn("validation failed, allowing request",
			"tool", policy.Tool,
			"provider", provider.Name(),
			"error", err,
		)
		metrics.ValidatorFailOpen.WithLabelValues(string(provider.Name())).Inc()

		return Result{IsValid: true}
	}

	if v.cache != nil {
		v.cache.Set(key, result, cache.DefaultExpiration)
	}

	return result
}

type reply struct {
	IsValid   bool     `json:"isValid"`
	Relevance *float64 `json:"relevance"`
	Message   string   `json:"message"`
}

func (v *Validator) validate(ctx context.Context, provider llm.Provider, policy Policy, input string) (Result, error) {
	text, err := provider.Complete(ctx, llm.Request{
		System:          systemPrompt,
		Prompt:          policy.BuildPrompt(input),
		Temperature:     validationTemperature,
		MaxOutputTokens: validationMaxTokens,
		JSON:            true,
	})
	if err != nil {
		return Result{}, err
	}

	if text == "" {
		return Result{}, errEmptyReply
	}

	raw, ok := llm.ExtractJSONObject(text)
	if !ok {
		return Result{}, fmt.Errorf("no JSON object in validation reply")
	}

	var parsed reply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Result{}, fmt.Errorf("failed to parse validation reply: %w", err)
	}

	relevance := 0
	if parsed.Relevance != nil {
		relevance = clamp(int(math.Round(*parsed.Relevance)))
	}

	result := Result{
		IsValid:   parsed.IsValid && relevance >= policy.Threshold,
		Relevance: relevance,
	}

	if !result.IsValid {
		result.Message = parsed.Message
		if result.Message == "" {
			result.Message = policy.RejectMessage
		}
	}

	return result, nil
}

func clamp(n int) int {
	return min(max(n, 0), 100)
}

func cacheKey(tool string, provider llm.Name, input string) string {
	sum := sha256.Sum256([]byte(input))
	return tool + "|" + string(provider) + "|" + hex.EncodeToString(sum[:])
}
