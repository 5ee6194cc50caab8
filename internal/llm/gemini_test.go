package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wire shape of a generateContent body, as the API receives it
type geminiWireRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	GenerationConfig struct {
		Temperature      float32 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
		ResponseMimeType string  `json:"responseMimeType"`
	} `json:"generationConfig"`
}

func newGeminiTestServer(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGemini(ProviderConfig{APIKey: "g-key", Model: "gemini-test", BaseURL: srv.URL})
	require.NoError(t, err)

	return p
}

func drain(t *testing.T, stream TextStream) []string {
	t.Helper()

	var out []string
	for {
		frag, err := stream.Recv()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, frag)
	}
}

func TestGemini_Complete(t *testing.T) {
	var got geminiWireRequest

	p := newGeminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"isValid\":"},{"text":"true}"}]}}]}`)
	})

	text, err := p.Complete(context.Background(), Request{
		System:          "be terse",
		Prompt:          "hello",
		Temperature:     0.5,
		MaxOutputTokens: 150,
		JSON:            true,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"isValid":true}`, text)

	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "be terse", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "hello", got.Contents[0].Parts[0].Text)
	assert.Equal(t, float32(0.5), got.GenerationConfig.Temperature)
	assert.Equal(t, 150, got.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestGemini_CompleteErrorStatus(t *testing.T) {
	p := newGeminiTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)
	})

	_, err := p.Complete(context.Background(), Request{Prompt: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API error")
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGemini_BlockedPrompt(t *testing.T) {
	p := newGeminiTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := p.Complete(context.Background(), Request{Prompt: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGemini_Stream(t *testing.T) {
	var got geminiWireRequest

	p := newGeminiTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:streamGenerateContent"), r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, `data: {"candidates":[{"content":{"parts":[{"text":"FROM "}]}}]}`+"\n\n")
		fmt.Fprint(w, `data: {"candidates":[{"content":{"parts":[{"text":"node:20"}]}}]}`+"\n\n")
	})

	stream, err := p.Stream(context.Background(), Request{Prompt: "dockerfile"})
	require.NoError(t, err)
	defer stream.Close() //nolint:errcheck

	assert.Equal(t, []string{"FROM ", "node:20"}, drain(t, stream))
	assert.Empty(t, got.GenerationConfig.ResponseMimeType)

	// exhausted streams keep answering EOF
	_, err = stream.Recv()
	assert.Equal(t, io.EOF, err)
}

func TestGemini_StreamRequestFailureSurfacesOnOpen(t *testing.T) {
	p := newGeminiTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"permission denied","status":"PERMISSION_DENIED"}}`)
	})

	stream, err := p.Stream(context.Background(), Request{Prompt: "x"})

	require.Error(t, err)
	assert.Nil(t, stream)
	assert.Contains(t, err.Error(), "Gemini API error")
	assert.Contains(t, err.Error(), "permission denied")
}

func TestGemini_StreamMalformedPayload(t *testing.T) {
	p := newGeminiTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {not json\n\n")
	})

	_, err := p.Stream(context.Background(), Request{Prompt: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Gemini API error")
}

func TestGemini_StreamCloseBeforeDraining(t *testing.T) {
	p := newGeminiTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		for i := 0; i < 3; i++ {
			fmt.Fprintf(w, "data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"part %d \"}]}}]}\n\n", i)
		}
	})

	stream, err := p.Stream(context.Background(), Request{Prompt: "x"})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "part 0 ", first)

	require.NoError(t, stream.Close())

	_, err = stream.Recv()
	assert.Equal(t, io.EOF, err)
}
