package dockerfile

import (
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/shared"
	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/tools"
)

// GenerateHandler godoc
// @Summary Generate a Dockerfile
// @Description Streams a Dockerfile for the described application as server-sent events
// @Tags dockerfile
// @Accept json
// @Produce text/event-stream
// @Param request body GenerateRequest true "Application description"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/generate-dockerfile [post]
func GenerateHandler(deps shared.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GenerateRequest
		if !shared.BindJSON(c, &req) {
			return
		}

		if !shared.Present(req.Description) {
			errors.ValidationError(c, "Description is required and must be a non-empty string")
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

		description := strings.TrimSpace(req.Description)

		shared.Stream(c, func(sink pipeline.Sink) pipeline.Outcome {
			return deps.Pipeline.RunValidated(c.Request.Context(), provider, tools.Dockerfile, description, sink)
		})
	}
}
