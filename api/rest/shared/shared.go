// Package shared holds the request plumbing common to every tool endpoint.
package shared

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/sse"
)

const invalidJSON = "Invalid JSON in request body"

// dependencies injected into every tool handler
type Deps struct {
	Providers llm.Source
	Pipeline  *pipeline.Pipeline
}

// decodes the JSON body, answering 400 when it is malformed
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		requestLogger(c).Debug("invalid request body", "error", err)
		errors.BadRequest(c, invalidJSON)
		return false
	}

	return true
}

// reports whether s has non-whitespace content
func Present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// parses the provider field, answering 400 for anything but openai or gemini
func ParseProvider(c *gin.Context, raw string) (llm.Name, bool) {
	name, err := llm.ParseName(raw)
	if err != nil {
		errors.BadRequest(c, err.Error())
		return "", false
	}

	return name, true
}

// resolves the adapter for name, answering 503 when its credentials are missing
func ResolveProvider(c *gin.Context, providers llm.Source, name llm.Name) (llm.Provider, bool) {
	provider, err := providers.Get(name)
	switch {
	case err == nil:
		return provider, true
	case stderrors.Is(err, llm.ErrNotConfigured):
		errors.ServiceUnavailable(c, err)
	case stderrors.Is(err, llm.ErrUnknownProvider):
		errors.BadRequest(c, err.Error())
	default:
		errors.InternalError(c, err)
	}

	return nil, false
}

// opens the event stream and hands it to run; nothing may be written to c afterwards
func Stream(c *gin.Context, run func(sink pipeline.Sink) pipeline.Outcome) {
	w, err := sse.NewWriter(c.Writer)
	if err != nil {
		errors.InternalError(c, err)
		return
	}

	out := run(w)

	requestLogger(c).Info("stream finished",
		"state", out.State,
		"helpful", out.Helpful,
		"token_limit_reached", out.TokenLimitReached,
	)
}
