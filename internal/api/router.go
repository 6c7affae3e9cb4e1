package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/sportmeet/server/internal/api/handlers"
	"github.com/sportmeet/server/internal/api/middleware"
	"github.com/sportmeet/server/internal/auth"
	"github.com/sportmeet/server/internal/config"
	"github.com/sportmeet/server/internal/domain/events"
	"github.com/sportmeet/server/internal/domain/stats"
	"github.com/sportmeet/server/internal/domain/users"
	"github.com/sportmeet/server/internal/metrics"
	"github.com/sportmeet/server/internal/storage/postgres"
)

// NewRouter wires repositories, services and handlers around the given pool.
// The caller owns the pool and closes it on shutdown.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, version string) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	usersService := users.NewService(repo.Users(), tokens, logger)
	eventsService := events.NewService(repo.Events(), logger)
	statsService := stats.NewService(repo.Stats(), logger)

	authHandler := handlers.NewAuthHandler(usersService, cfg.Environment)
	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	statsHandler := handlers.NewStatsHandler(statsService, cfg.Environment)
	health := handlers.NewHealthChecker(pool, version)

	requireUser := middleware.RequireUser(tokens, cfg.Environment)
	optionalUser := middleware.OptionalUser(tokens)

	mux := http.NewServeMux()
	mux.Handle("/healthz", http.HandlerFunc(health.Healthz))
	mux.Handle("/readyz", http.HandlerFunc(health.Readyz))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/v1/auth/register", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Register),
	}))
	mux.Handle("/api/v1/auth/login", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))

	mux.Handle("/api/v1/events", methodMux(map[string]http.Handler{
		http.MethodGet:  optionalUser(http.HandlerFunc(eventsHandler.List)),
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/api/v1/events/my-events", methodMux(map[string]http.Handler{
		http.MethodGet: requireUser(http.HandlerFunc(eventsHandler.MyEvents)),
	}))
	mux.Handle("/api/v1/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: optionalUser(http.HandlerFunc(eventsHandler.Get)),
	}))
	mux.Handle("/api/v1/events/{id}/join", methodMux(map[string]http.Handler{
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Join)),
	}))
	mux.Handle("/api/v1/events/{id}/leave", methodMux(map[string]http.Handler{
		http.MethodPost: requireUser(http.HandlerFunc(eventsHandler.Leave)),
	}))

	mux.Handle("/api/v1/stats", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(statsHandler.Global),
	}))
	mux.Handle("/api/v1/stats/sports", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(statsHandler.Sports),
	}))
	mux.Handle("/api/v1/stats/user", methodMux(map[string]http.Handler{
		http.MethodGet: requireUser(http.HandlerFunc(statsHandler.User)),
	}))

	var handler http.Handler = mux
	handler = metrics.Middleware(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	return handler, nil
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
