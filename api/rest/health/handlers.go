package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/devassist/server/internal/llm"
)

const (
	serviceName = "devassist"
	version     = "1.0.0"
)

// Handler godoc
// @Summary Health check
// @Description Reports server health and which providers have credentials
// @Tags health
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func Handler(providers llm.Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		available := make(map[string]bool, 2)

		for _, name := range []llm.Name{llm.OpenAI, llm.Gemini} {
			_, err := providers.Get(name)
			available[string(name)] = err == nil
		}

		c.JSON(http.StatusOK, Response{
			Status:    "healthy",
			Service:   serviceName,
			Version:   version,
			Providers: available,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
