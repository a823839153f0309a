// ABOUTME: Prometheus instrumentation middleware for API requests
// ABOUTME: Records request count, latency, and in-flight gauge

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/secureapi/gateway/internal/metrics"
)

// Metrics records Prometheus metrics for every request: a counter by
// method/path/status, a latency histogram, and an in-flight gauge.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		metrics.RecordRequest(
			r.Method,
			r.URL.Path,
			strconv.Itoa(sw.status),
			time.Since(start),
		)
	})
}
