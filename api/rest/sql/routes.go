package sql

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/shared"
)

func RegisterRoutes(router *gin.RouterGroup, deps shared.Deps) {
	router.POST("/optimize-sql", OptimizeHandler(deps))
}
