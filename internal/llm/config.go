package llm

import (
	"codeberg.org/devassist/server/internal/config"
)

const (
	defaultRequestsPerSecond = 50
	defaultBurst             = 10
)

// builds a registry whose providers read their credentials from cfg on first use
func NewRegistryFromConfig(cfg *config.Config) *Registry {
	return NewRegistry(map[Name]Factory{
		OpenAI: func() (Provider, error) {
			pc, err := loadConfig(OpenAI, cfg)
			if err != nil {
				return nil, err
			}

			return NewOpenAI(pc), nil
		},
		Gemini: func() (Provider, error) {
			pc, err := loadConfig(Gemini, cfg)
			if err != nil {
				return nil, err
			}

			provider, err := NewGemini(pc)
			if err != nil {
				return nil, err
			}

			return provider, nil
		},
	})
}

// loads the adapter configuration for one provider
func loadConfig(name Name, cfg *config.Config) (ProviderConfig, error) {
	pc := ProviderConfig{
		RequestsPerSecond: defaultRequestsPerSecond,
		Burst:             defaultBurst,
	}

	switch name {
	case OpenAI:
		pc.APIKey, pc.Model, pc.BaseURL = cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL
	case Gemini:
		pc.APIKey, pc.Model, pc.BaseURL = cfg.GeminiKey, cfg.GeminiModel, cfg.GeminiBaseURL
	default:
		return pc, ErrUnknownProvider
	}

	if pc.APIKey == "" {
		return pc, notConfigured(name)
	}

	return pc, nil
}
