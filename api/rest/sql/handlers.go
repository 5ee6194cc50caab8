package sql

import (
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/shared"
	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/tools"
)

// OptimizeHandler godoc
// @Summary Optimize a SQL query
// @Description Streams an optimized query, or in explain mode a Markdown explanation of an optimization, as server-sent events
// @Tags sql
// @Accept json
// @Produce text/event-stream
// @Param request body OptimizeRequest true "Query and mode"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/optimize-sql [post]
func OptimizeHandler(deps shared.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OptimizeRequest
		if !shared.BindJSON(c, &req) {
			return
		}

		name, ok := shared.ParseProvider(c, req.Provider)
		if !ok {
			return
		}

		switch req.Mode {
		case ModeOptimize:
			if !shared.Present(req.Query) {
				errors.ValidationError(c, "SQL query is required and must be a non-empty string")
				return
			}
		case ModeExplain:
			if !shared.Present(req.OriginalQuery) || !shared.Present(req.OptimizedQuery) {
				errors.ValidationError(c, "Both originalQuery and optimizedQuery are required for explanation mode")
				return
			}
		default:
			errors.BadRequest(c, `Mode must be either "optimize" or "explain"`)
			return
		}

		provider, ok := shared.ResolveProvider(c, deps.Providers, name)
		if !ok {
			return
		}

		ctx := c.Request.Context()

		if req.Mode == ModeExplain {
			task := tools.SQLExplanation(strings.TrimSpace(req.OriginalQuery), strings.TrimSpace(req.OptimizedQuery))

			shared.Stream(c, func(sink pipeline.Sink) pipeline.Outcome {
				return deps.Pipeline.RunTask(ctx, provider, task, sink)
			})
			return
		}

		query := strings.TrimSpace(req.Query)

		shared.Stream(c, func(sink pipeline.Sink) pipeline.Outcome {
			return deps.Pipeline.RunValidated(ctx, provider, tools.SQL, query, sink)
		})
	}
}
