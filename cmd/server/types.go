package main

import (
	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/internal/config"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/ratelimit"
)

// holds all dependencies and state for the API server
type Server struct {
	config    *config.Config
	providers *llm.Registry
	pipeline  *pipeline.Pipeline
	limiter   *ratelimit.Limiter
	router    *gin.Engine
}
