package errors

import (
	"net/http"

	"codeberg.org/devassist/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.BadRequest(), errors.InternalError(), etc. before the stream opens
//     These functions handle both logging and HTTP response automatically
//   - Once SSE headers are flushed, failures become a terminal {"error"} event instead
//
// For services/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond

// standard error codes
const (
	CodeBadRequest         = "bad_request"
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeServiceUnavailable = "service_unavailable"
	CodeTooManyRequests    = "too_many_requests"
	CodeNotFound           = "not_found"
)

const internalServerError = "Internal server error"

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: message,
		Code:  CodeBadRequest,
	})
}

// returns a 400 error for request bodies that fail field validation
func ValidationError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: message,
		Code:  CodeValidationError,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, err error) {
	logger.ErrorErr(logger.FromContext(c.Request.Context()), err, "internal error",
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"category", classifyError(err).category,
	)

	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: internalServerError,
		Code:  CodeServerError,
	})
}

// returns a 503 when a provider cannot serve requests
func ServiceUnavailable(c *gin.Context, err error) {
	info := classifyError(err)

	logger.FromContext(c.Request.Context()).Warn("service unavailable",
		"error", err,
		"path", c.Request.URL.Path,
		"category", info.category,
	)

	c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorResponse{
		Error: info.sanitized,
		Code:  CodeServiceUnavailable,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "Too many requests. Please slow down and try again shortly."
	}

	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error: message,
		Code:  CodeTooManyRequests,
	})
}

// returns a 404 for unknown routes
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{
		Error: "Not found",
		Code:  CodeNotFound,
	})
}

// converts panics into the standard 500 body
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)

		// headers may already be flushed on a stream
		if c.Writer.Written() {
			c.Abort()
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: internalServerError,
			Code:  CodeServerError,
		})
	})
}
