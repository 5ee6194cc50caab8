package main

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/internal/config"
	"codeberg.org/devassist/server/internal/errors"
	"codeberg.org/devassist/server/internal/langdetect"
	"codeberg.org/devassist/server/internal/llm"
	"codeberg.org/devassist/server/internal/logger"
	"codeberg.org/devassist/server/internal/pipeline"
	"codeberg.org/devassist/server/internal/ratelimit"
	"codeberg.org/devassist/server/internal/validator"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.OpenAIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set, openai requests will be refused")
	}

	if cfg.GeminiKey == "" {
		logger.Warn("GEMINI_API_KEY is not set, gemini requests will be refused")
	}

	limiter, err := ratelimit.New(cfg.RateLimit, cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	strategy := cfg.LanguageDetection

	p := pipeline.New(pipeline.Options{
		Validator: validator.New(cfg.ValidationCacheTTL),
		Detector: func(provider llm.Provider) langdetect.Detector {
			return langdetect.New(strategy, provider)
		},
		Timeout: cfg.RequestTimeout,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(logger.Middleware())
	router.Use(errors.Recovery())
	router.Use(corsMiddleware(cfg.CORSOrigins))
	router.NoRoute(errors.NotFound)

	server := &Server{
		config:    cfg,
		providers: llm.NewRegistryFromConfig(cfg),
		pipeline:  p,
		limiter:   limiter,
		router:    router,
	}

	RegisterRoutes(router, server)

	logger.Info("server initialized",
		"environment", cfg.Environment,
		"language_detection", cfg.LanguageDetection,
		"rate_limit", cfg.RateLimit,
		"request_timeout", cfg.RequestTimeout,
	)

	return server, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
	}

	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}
