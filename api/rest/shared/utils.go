package shared

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/internal/logger"
)

func requestLogger(c *gin.Context) *slog.Logger {
	return logger.FromContext(c.Request.Context())
}
