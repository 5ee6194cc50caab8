package llm

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"codeberg.org/devassist/server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		raw     string
		want    Name
		wantErr bool
	}{
		{"openai", OpenAI, false},
		{"gemini", Gemini, false},
		{" gemini ", Gemini, false},
		{"anthropic", "", true},
		{"", "", true},
		{"OpenAI", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseName(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownProvider)
				assert.Equal(t, `Provider must be either "openai" or "gemini"`, err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_ConstructsOnce(t *testing.T) {
	var calls atomic.Int32

	reg := NewRegistry(map[Name]Factory{
		OpenAI: func() (Provider, error) {
			calls.Add(1)
			return NewOpenAI(ProviderConfig{APIKey: "sk-test"}), nil
		},
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := reg.Get(OpenAI)
			assert.NoError(t, err)
			assert.Equal(t, OpenAI, p.Name())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	reg := NewRegistry(map[Name]Factory{})

	_, err := reg.Get("claude")

	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewRegistryFromConfig_MissingKeyDisablesOnlyThatProvider(t *testing.T) {
	reg := NewRegistryFromConfig(&config.Config{OpenAIKey: "sk-test"})

	p, err := reg.Get(OpenAI)
	require.NoError(t, err)
	assert.Equal(t, OpenAI, p.Name())

	_, err = reg.Get(Gemini)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, "gemini provider not configured: GEMINI_API_KEY is not set", err.Error())

	// failure is remembered, not retried
	_, again := reg.Get(Gemini)
	assert.Equal(t, err, again)
}
