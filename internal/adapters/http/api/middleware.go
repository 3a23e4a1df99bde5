package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/metrics"
)

// errorLabels are the error metric labels per status. They are the same
// strings statusOf writes into the code field of error bodies.
var errorLabels = map[int]string{ //nolint:gochecknoglobals // fixed lookup table
	http.StatusBadRequest:            "bad_request",
	http.StatusNotFound:              "not_found",
	http.StatusRequestEntityTooLarge: "too_large",
	http.StatusTooManyRequests:       "rate_limited",
	http.StatusServiceUnavailable:    "not_ready",
	http.StatusInternalServerError:   "internal_error",
}

// MetricsMiddleware records request count, latency and, for statuses of 400
// and above, error metrics labelled by endpoint.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			// nothing was written
			status = http.StatusOK
		}
		ms := float64(time.Since(start).Milliseconds())
		code := strconv.Itoa(status)

		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, ms)

		if status < http.StatusBadRequest {
			return
		}
		label := errorLabel(status)
		metrics.RecordErrorByEndpoint(endpoint, r.Method, label)
		metrics.RecordErrorByType(label, errorSeverity(status))
		metrics.RecordErrorLatency("http", label, ms)
	}
}

func errorLabel(status int) string {
	if l, ok := errorLabels[status]; ok {
		return l
	}
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return "client_error"
}

// errorSeverity ranks a failed status. A 503 before the first load and a
// throttled refresh are expected in normal operation.
func errorSeverity(status int) string {
	switch {
	case status == http.StatusServiceUnavailable, status == http.StatusTooManyRequests:
		return "low"
	case status >= http.StatusInternalServerError:
		return "high"
	default:
		return "medium"
	}
}
