package langdetect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/devassist/server/internal/config"
	"codeberg.org/devassist/server/internal/llm"
)

const detectionSystemPrompt = "You are a JSON-only response assistant. Always respond with valid JSON only."

// asks a provider to classify the snippet; any failure is an error, never a guess
type ModelDetector struct {
	provider llm.Provider
}

func NewModelDetector(provider llm.Provider) *ModelDetector {
	return &ModelDetector{provider: provider}
}

type modelReply struct {
	Language    string `json:"language"`
	Framework   string `json:"framework"`
	DisplayName string `json:"displayName"`
}

// wraps every model detection failure
type DetectionError struct {
	Cause error
}

func (e *DetectionError) Error() string {
	return "language detection failed: " + e.Cause.Error()
}

func (e *DetectionError) Unwrap() error {
	return e.Cause
}

func detectionError(format string, args ...any) error {
	return &DetectionError{Cause: fmt.Errorf(format, args...)}
}

func (d *ModelDetector) Detect(ctx context.Context, code string) (Info, error) {
	reply, err := d.provider.Complete(ctx, llm.Request{
		System:          detectionSystemPrompt,
		Prompt:          buildDetectionPrompt(code),
		Temperature:     0.1,
		MaxOutputTokens: 150,
		JSON:            true,
	})
	if err != nil {
		return Info{}, &DetectionError{Cause: err}
	}

	raw, ok := llm.ExtractJSONObject(reply)
	if !ok {
		return Info{}, detectionError("no JSON object in response")
	}

	var parsed modelReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Info{}, detectionError("invalid JSON: %w", err)
	}

	lang, known := ParseLanguage(strings.ToLower(strings.TrimSpace(parsed.Language)))
	if !known {
		return Info{}, detectionError("unsupported language %q", parsed.Language)
	}

	info := InfoFor(lang)

	// the model may name a more specific framework than the default
	if f := strings.TrimSpace(parsed.Framework); f != "" && lang != Unknown {
		info.Framework = f
	}

	if n := strings.TrimSpace(parsed.DisplayName); n != "" && lang != Unknown {
		info.DisplayName = n
	}

	return info, nil
}

func buildDetectionPrompt(code string) string {
	names := make([]string, 0, len(Supported)+1)
	for _, lang := range Supported {
		names = append(names, string(lang))
	}
	names = append(names, string(Unknown))

	return fmt.Sprintf(`Identify the programming language of the code below and the unit-test framework best suited to it.

Allowed values for "language": %s.
Use "unknown" when the text is not code or the language is not in the list.
Default frameworks: typescript/javascript -> Jest, python -> pytest, java -> JUnit 5, csharp -> xUnit, go -> testing, ruby -> RSpec.

Respond with ONLY a JSON object in this exact format:
{"language": "<language>", "framework": "<framework>", "displayName": "<human readable language name>"}

Code:
%s`, strings.Join(names, ", "), code)
}

// picks the configured detection strategy for a provider
func New(strategy string, provider llm.Provider) Detector {
	if strategy == config.DetectionPattern {
		return NewPatternDetector()
	}

	return NewModelDetector(provider)
}
