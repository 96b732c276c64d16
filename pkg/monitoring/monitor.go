package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	SwapTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_swap_transitions_total",
			Help: "Swap request status changes by source and target status",
		},
		[]string{"from", "to"},
	)

	SwapRejectedTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_swap_transitions_denied_total",
			Help: "Swap status changes refused, by reason",
		},
		[]string{"reason"},
	)

	ReviewsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_reviews_submitted_total",
			Help: "Reviews stored, by rating",
		},
		[]string{"rating"},
	)

	QuizAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_quiz_attempts_total",
			Help: "Skill verification quiz submissions by outcome",
		},
		[]string{"outcome"},
	)

	AIRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillswap_ai_requests_total",
			Help: "Generator calls by feature and outcome",
		},
		[]string{"feature", "outcome"},
	)

	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skillswap_ai_request_duration_seconds",
			Help:    "Latency of generator calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
		[]string{"feature"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			SwapTransitions,
			SwapRejectedTransitions,
			ReviewsSubmitted,
			QuizAttempts,
			AIRequests,
			AIRequestDuration,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
