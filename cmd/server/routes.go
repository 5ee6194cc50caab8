package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/api/rest/components"
	"codeberg.org/devassist/server/api/rest/dockerfile"
	"codeberg.org/devassist/server/api/rest/health"
	"codeberg.org/devassist/server/api/rest/network"
	"codeberg.org/devassist/server/api/rest/shared"
	"codeberg.org/devassist/server/api/rest/sql"
	"codeberg.org/devassist/server/api/rest/unittests"
	"codeberg.org/devassist/server/internal/metrics"
)

// sets up all API routes
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.GET("/health", health.Handler(server.providers))
	router.GET("/metrics", metrics.Handler())

	deps := shared.Deps{
		Providers: server.providers,
		Pipeline:  server.pipeline,
	}

	api := router.Group("/api")
	api.GET("/ping", health.PingHandler)

	tools := api.Group("", server.limiter.Middleware())
	{
		components.RegisterRoutes(tools, deps)
		dockerfile.RegisterRoutes(tools, deps)
		unittests.RegisterRoutes(tools, deps)
		network.RegisterRoutes(tools, deps)
		sql.RegisterRoutes(tools, deps)
	}
}
