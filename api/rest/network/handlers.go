package network

import (
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/shared"
	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/tools"
)

// TroubleshootHandler godoc
// @Summary Troubleshoot a network problem
// @Description Streams a troubleshooting guide, or in extract-code mode the runnable commands of a guide, as server-sent events
// @Tags network
// @Accept json
// @Produce text/event-stream
// @Param request body TroubleshootRequest true "Problem description or guide"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /api/network-troubleshooting [post]
func TroubleshootHandler(deps shared.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TroubleshootRequest
		if !shared.BindJSON(c, &req) {
			return
		}

		name, ok := shared.ParseProvider(c, req.Provider)
		if !ok {
			return
		}

		mode := req.Mode
		if mode == "" {
			mode = ModeTroubleshoot
		}

		switch mode {
		case ModeTroubleshoot:
			if !shared.Present(req.Description) {
				errors.ValidationError(c, "Description is required and must be a non-empty string")
				return
			}
		case ModeExtractCode:
			if !shared.Present(req.TroubleshootingGuide) {
				errors.ValidationError(c, "Troubleshooting guide is required for code extraction")
				return
			}
		default:
			errors.BadRequest(c, `Mode must be either "troubleshoot" or "extract-code"`)
			return
		}

		provider, ok := shared.ResolveProvider(c, deps.Providers, name)
		if !ok {
			return
		}

		ctx := c.Request.Context()

		if mode == ModeExtractCode {
			task := tools.CommandExtraction(strings.TrimSpace(req.TroubleshootingGuide))

			shared.Stream(c, func(sink pipeline.Sink) pipeline.Outcome {
				return deps.Pipeline.RunTask(ctx, provider, task, sink)
			})
			return
		}

		description := strings.TrimSpace(req.Description)

		shared.Stream(c, func(sink pipeline.Sink) pipeline.Outcome {
			return deps.Pipeline.RunValidated(ctx, provider, tools.Network, description, sink)
		})
	}
}
