package unittests

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/shared"
)

func RegisterRoutes(router *gin.RouterGroup, deps shared.Deps) {
	router.POST("/generate-unit-tests", GenerateHandler(deps))
}
