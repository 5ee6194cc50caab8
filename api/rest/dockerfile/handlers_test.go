package dockerfile

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/devassist/server/api/rest/shared/resttest"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/llm/llmtest"
	"codeberg.org/devassist/server/internal/sse"
)

const path = "/api/generate-dockerfile"

func TestGenerateHandler_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"description": `, "Invalid JSON in request body"},
		{"missing description", `{"provider": "openai"}`, "Description is required and must be a non-empty string"},
		{"blank description", `{"description": "  \n ", "provider": "openai"}`, "Description is required and must be a non-empty string"},
		{"missing provider", `{"description": "go api"}`, `Provider must be either "openai" or "gemini"`},
		{"unknown provider", `{"description": "go api", "provider": "anthropic"}`, `Provider must be either "openai" or "gemini"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := llmtest.New(llm.OpenAI)
			router := resttest.Router(llmtest.Source{llm.OpenAI: provider}, RegisterRoutes)

			w := resttest.Post(router, path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, resttest.ErrorMessage(t, w))
			assert.Empty(t, provider.Requests(), "no provider call before validation passes")
		})
	}
}

func TestGenerateHandler_ProviderWithoutCredentials(t *testing.T) {
	router := resttest.Router(resttest.Unconfigured(), RegisterRoutes)

	w := resttest.Post(router, path, `{"description": "go api", "provider": "gemini"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, resttest.ErrorMessage(t, w), "GEMINI_API_KEY")
}

func TestGenerateHandler_StreamsDockerfile(t *testing.T) {
	provider := llmtest.New(llm.OpenAI).
		QueueCompletion(`{"isValid": true, "relevance": 95}`, nil).
		QueueStream([]string{"```dockerfile\n", "FROM node:20-alpine\n", "CMD [\"node\", \"server.js\"]\n```"}, nil)
	router := resttest.Router(llmtest.Source{llm.OpenAI: provider}, RegisterRoutes)

	w := resttest.Post(router, path, `{"description": "  Node.js Express API  ", "provider": "openai"}`)

	assert.Equal(t, []sse.Event{
		sse.Chunk{Text: "FROM node:20-alpine\n"},
		sse.Chunk{Text: "CMD [\"node\", \"server.js\"]\n"},
		sse.Done{},
	}, resttest.Events(t, w))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	reqs := provider.Requests()
	require.Len(t, reqs, 2)
	assert.Contains(t, reqs[1].Prompt, "Node.js Express API")
	assert.NotContains(t, reqs[1].Prompt, "  Node.js")
}

func TestGenerateHandler_ProviderFailureIsTerminalEvent(t *testing.T) {
	provider := llmtest.New(llm.Gemini).
		QueueCompletion(`{"isValid": true, "relevance": 80}`, nil).
		QueueStreamError(errors.New("gemini API error: status 500"))
	router := resttest.Router(llmtest.Source{llm.Gemini: provider}, RegisterRoutes)

	w := resttest.Post(router, path, `{"description": "rust web server", "provider": "gemini"}`)

	assert.Equal(t, []sse.Event{
		sse.Error{Message: "Failed to generate Dockerfile: gemini API error: status 500"},
	}, resttest.Events(t, w))
}
