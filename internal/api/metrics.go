package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Aideepakchaudhary/chainmate/pkg/chainmate"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainmate",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainmate",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	toolCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainmate",
		Name:      "tool_calls_total",
		Help:      "Agent tool invocations by tool name.",
	}, []string{"tool"})
)

func metricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(wrapped, r)

			route := routePattern(r)
			if route == "" {
				route = r.URL.Path
			}
			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}
			httpRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

// recordToolCalls counts the tool invocations attached to a chat reply.
func recordToolCalls(message *chainmate.ChatMessage) {
	if message == nil || message.Data == nil {
		return
	}
	for _, call := range message.Data.ToolCalls {
		toolCallsTotal.WithLabelValues(call.Tool).Inc()
	}
}
