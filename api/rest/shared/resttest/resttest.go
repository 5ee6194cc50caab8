// Package resttest provides helpers for exercising tool endpoints in tests.
package resttest

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"codeberg.org/devassist/server/api/rest/shared"
	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/langdetect"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/sse"
)

// builds a router with the given routes mounted under /api; detection uses the regex scorer
func Router(providers llm.Source, register func(*gin.RouterGroup, shared.Deps)) *gin.Engine {
	gin.SetMode(gin.TestMode)

	deps := shared.Deps{
		Providers: providers,
		Pipeline: pipeline.New(pipeline.Options{
			Detector: func(llm.Provider) langdetect.Detector { return langdetect.NewPatternDetector() },
		}),
	}

	router := gin.New()
	register(router.Group("/api"), deps)

	return router
}

// posts a raw JSON body
func Post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// decodes every event of a recorded stream
func Events(t *testing.T, w *httptest.ResponseRecorder) []sse.Event {
	t.Helper()

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	reader := sse.NewReader(w.Body)

	var events []sse.Event
	for {
		ev, err := reader.Next()
		if stderrors.Is(err, io.EOF) {
			break
		}

		require.NoError(t, err)
		events = append(events, ev)
	}

	require.Zero(t, reader.Malformed(), "server wrote malformed frames")

	return events
}

// returns the error message of a JSON error response
func ErrorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())

	return body.Error
}

// source whose providers all lack credentials
func Unconfigured() llm.Source {
	factory := func(name llm.Name) llm.Factory {
		return func() (llm.Provider, error) {
			return nil, fmt.Errorf("%s %w: %s_API_KEY is not set", name, llm.ErrNotConfigured, strings.ToUpper(string(name)))
		}
	}

	return llm.NewRegistry(map[llm.Name]llm.Factory{
		llm.OpenAI: factory(llm.OpenAI),
		llm.Gemini: factory(llm.Gemini),
	})
}
