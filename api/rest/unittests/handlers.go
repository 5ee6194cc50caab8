package unittests

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/shared"
	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/tools"
)

// GenerateHandler godoc
// @Summary Generate unit tests
// @Description Detects the language of the submitted code and streams unit tests for it as server-sent events
// @Tags unit-tests
// @Accept json
// @Produce text/event-stream
// @Param request body GenerateRequest true "Source code"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/generate-unit-tests [post]
func GenerateHandler(deps shared.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if !shared.BindJSON(c, &req) {
			return
		}

		if !shared.Present(req.Code) {
			errors.ValidationError(c, "Code is required and must be a non-empty string")
			return
		}

		code := strings.TrimSpace(req.Code)

		if lines := countLines(code); lines > tools.MaxUnitTestLines {
			errors.ValidationError(c, fmt.Sprintf(
				"Code exceeds maximum limit of %d lines. Your code has %d lines. Please reduce the code size.",
				tools.MaxUnitTestLines, lines,
			))
			return
		}

		name, ok := shared.ParseProvider(c, req.Provider)
		if !ok {
			return
		}

		provider, ok := shared.ResolveProvider(c, deps.Providers, name)
		if !ok {
			return
		}

		shared.Stream(c, func(sink pipeline.Sink) pipeline.Outcome {
			return deps.Pipeline.RunUnitTests(c.Request.Context(), provider, code, sink)
		})
	}
}

// counts lines of already trimmed code
func countLines(code string) int {
	return strings.Count(code, "\n") + 1
}
