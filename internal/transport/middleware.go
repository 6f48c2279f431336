package transport

import (
	"net/http"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// statusWriter captures the response code for the request log.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// WithRequestLogging logs every request with method, path, status and duration.
func WithRequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Duration("duration", time.Since(started)))
		})
	}
}

// WithRateLimit paces requests through a leaky bucket. Callers above the
// budget are delayed, not rejected, which suits the small deployments this
// service targets.
func WithRateLimit(rps int) func(http.Handler) http.Handler {
	rl := ratelimit.New(rps)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rl.Take()
			next.ServeHTTP(w, r)
		})
	}
}

// Chain wraps handler with the middlewares, first middleware outermost.
func Chain(handler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
