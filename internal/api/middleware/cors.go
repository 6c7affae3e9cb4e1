package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sportmeet/server/internal/config"
)

// CORS handles cross-origin requests from the browser frontend.
// Development allows every origin; production requires an explicit allowlist
// (CORS_ALLOWED_ORIGINS). Rejections are logged for monitoring.
func CORS(cfg config.CORSConfig, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed := ""
			if cfg.AllowAllOrigins {
				allowed = origin
			} else if originAllowed(origin, cfg.AllowedOrigins) {
				allowed = origin
			}

			if allowed == "" {
				logger.Warn().
					Str("origin", origin).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("rejected CORS origin")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "86400")
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowlist []string) bool {
	for _, candidate := range allowlist {
		if strings.EqualFold(candidate, origin) {
			return true
		}
	}
	return false
}
