package ratelimit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/devassist/server/internal/errors"
)

func newRouter(t *testing.T, rate string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l, err := New(rate, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	router := gin.New()
	router.Use(l.Middleware())
	router.POST("/api/generate-dockerfile", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func send(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate-dockerfile", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func TestMiddleware_RejectsAfterLimit(t *testing.T) {
	router := newRouter(t, "2-M")

	assert.Equal(t, http.StatusOK, send(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, send(router, "10.0.0.1:1234").Code)

	w := send(router, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	var body errors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, limitMessage, body.Error)
	assert.Equal(t, errors.CodeTooManyRequests, body.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_CountsClientsSeparately(t *testing.T) {
	router := newRouter(t, "1-M")

	assert.Equal(t, http.StatusOK, send(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, send(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, send(router, "10.0.0.2:1234").Code)
}

func TestNew_InvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		rate     string
		redisURL string
		wantErr  string
	}{
		{"malformed rate", "sixty", "", "invalid rate limit"},
		{"bad period", "10-Y", "", "invalid rate limit"},
		{"bad redis url", "10-M", "http://localhost:6379", "failed to parse redis url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rate, tt.redisURL)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
