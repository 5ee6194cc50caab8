package llm

import (
	"context"
	"errors"
)

// identifies an upstream model provider
type Name string

const (
	OpenAI Name = "openai"
	Gemini Name = "gemini"
)

var (
	ErrUnknownProvider = errors.New(`Provider must be either "openai" or "gemini"`)
	ErrNotConfigured   = errors.New("provider not configured")
)

// a single prompt sent to a provider
type Request struct {
	System          string
	Prompt          string
	Temperature     float32
	MaxOutputTokens int

	// ask for a bare JSON object
	JSON bool
}

// pull-based stream of text fragments; Recv returns io.EOF when the provider is done
type TextStream interface {
	Recv() (string, error)
	Close() error
}

// hosted model that can answer a prompt in one shot or as a stream
type Provider interface {
	Name() Name
	Complete(ctx context.Context, req Request) (string, error)
	Stream(ctx context.Context, req Request) (TextStream, error)
}

// resolves a provider by name
type Source interface {
	Get(name Name) (Provider, error)
}

// holds the settings shared by both adapters
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string

	// provider call pacing
	RequestsPerSecond float64
	Burst             int
}
