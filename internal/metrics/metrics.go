package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_generation_requests_total",
			Help: "Generation requests by tool, provider and final state",
		},
		[]string{"tool", "provider", "outcome"},
	)

	StreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "devassist_stream_duration_seconds",
			Help:    "Time from request accepted to terminal event",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
		[]string{"tool"},
	)

	TokenLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_token_limit_hits_total",
			Help: "Streams cut short by the token budget",
		},
		[]string{"tool"},
	)

	ValidatorFailOpen = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devassist_validator_fail_open_total",
			Help: "Validation calls that failed and let the request through",
		},
		[]string{"provider"},
	)

	ValidationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "devassist_validation_cache_hits_total",
			Help: "Validation results served from the in-process cache",
		},
	)
)

// exposes the default registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
