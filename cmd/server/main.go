package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/devassist/server/internal/config"
	"codeberg.org/devassist/server/internal/logger"
)

// @title DevAssist API
// @version 1.0
// @description AI-assisted developer tools streamed over server-sent events
// @description
// @description Tools:
// @description - React component generation
// @description - Dockerfile generation
// @description - Unit test generation with language detection
// @description - Network troubleshooting with command extraction
// @description - SQL query optimization and explanation

// @license.name GPL-3.0
// @license.url https://www.gnu.org/licenses/gpl-3.0.html

const (
	// streams may run until the request timeout, plus headroom to deliver the final event
	writeTimeoutHeadroom = 30 * time.Second
	shutdownTimeout      = 10 * time.Second
)

func main() {
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.FatalErr(err, "failed to load configuration")
	}

	logger.Configure(cfg.Environment)
	logger.Info("starting devassist server", "environment", cfg.Environment)

	srv, err := NewServer(cfg)
	if err != nil {
		logger.FatalErr(err, "failed to create server")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           srv.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + writeTimeoutHeadroom,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.FatalErr(err, "server failed to start")
		}
	}()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.limiter.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown

	logger.Info("server stopped")
}
