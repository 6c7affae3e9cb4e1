package handlers

import (
	"net/http"

	"github.com/sportmeet/server/internal/api/middleware"
	"github.com/sportmeet/server/internal/api/problem"
	"github.com/sportmeet/server/internal/domain/stats"
)

type StatsHandler struct {
	Service *stats.Service
	Env     string
}

func NewStatsHandler(service *stats.Service, env string) *StatsHandler {
	return &StatsHandler{Service: service, Env: env}
}

func (h *StatsHandler) Global(w http.ResponseWriter, r *http.Request) {
	global, err := h.Service.Global(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, global)
}

func (h *StatsHandler) Sports(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Service.Sports(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	if counts == nil {
		counts = []stats.SportCount{}
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *StatsHandler) User(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	userStats, err := h.Service.User(r.Context(), identity.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, userStats)
}
