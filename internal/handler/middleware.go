package handler

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	u "github.com/riteshkumar/finapi/internal/utils"
)

// LoggingMiddleware logs incoming HTTP requests
func LoggingMiddleware(logger *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			wrapped := u.NewResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			logger.Info("incoming request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.StatusCode,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// RecoveryMiddleware turns a panicking handler into a 500 instead of dropping the connection.
// A response that has already started is left alone; the panic is only logged.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := u.NewResponseWriter(w)
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("panic while serving request",
						"method", r.Method,
						"path", r.URL.Path,
						"panic", rec,
						"response_started", wrapped.WroteHeader(),
						"stack", string(debug.Stack()),
					)
					if !wrapped.WroteHeader() {
						u.WriteError(wrapped, http.StatusInternalServerError, "internal server error", "")
					}
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}

// CORSMiddleware allows browsers on the given origins to call the API, including the
// header that carries the tax id.
func CORSMiddleware(allowedOrigins []string, taxIDHeader string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", taxIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
