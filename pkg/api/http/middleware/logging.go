package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// RequestLogging registra todas las peticiones HTTP con método, ruta y
// duración.
func RequestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("petición HTTP",
				zap.String("method", r.Method),
				zap.String("path", r.RequestURI),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
