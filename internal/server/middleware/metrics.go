package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/civicvote/internal/server/metrics"
)

// MetricsMiddleware records request duration and in-flight requests.
// The route label is the matched mux pattern, so ids in the query never
// reach label values.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			// ServeMux заполняет r.Pattern при сопоставлении маршрута
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}

			m.RequestDuration.WithLabelValues(
				route,
				r.Method,
				strconv.Itoa(wrapped.statusCode),
			).Observe(time.Since(start).Seconds())
		})
	}
}
