package llm

import (
	"fmt"
	"strings"
	"sync"
)

// lazily constructs a provider on first use
type Factory func() (Provider, error)

// holds one init-once entry per provider
type Registry struct {
	entries map[Name]*entry
}

type entry struct {
	once     sync.Once
	factory  Factory
	provider Provider
	err      error
}

// creates a registry from provider factories
func NewRegistry(factories map[Name]Factory) *Registry {
	entries := make(map[Name]*entry, len(factories))

	for name, factory := range factories {
		entries[name] = &entry{factory: factory}
	}

	return &Registry{entries: entries}
}

// returns the provider, constructing it on first call
func (r *Registry) Get(name Name) (Provider, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, ErrUnknownProvider
	}

	e.once.Do(func() {
		e.provider, e.err = e.factory()
	})

	return e.provider, e.err
}

// parses the wire value of a provider field
func ParseName(raw string) (Name, error) {
	switch Name(strings.TrimSpace(raw)) {
	case OpenAI:
		return OpenAI, nil
	case Gemini:
		return Gemini, nil
	default:
		return "", ErrUnknownProvider
	}
}

func notConfigured(name Name) error {
	return fmt.Errorf("%s %w: %s is not set", name, ErrNotConfigured, apiKeyEnv(name))
}
