package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sportmeet/server/internal/api/middleware"
	"github.com/sportmeet/server/internal/api/problem"
	"github.com/sportmeet/server/internal/domain/events"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

type createEventRequest struct {
	Title           string    `json:"title" validate:"required,max=200"`
	SportType       string    `json:"sport_type" validate:"required,max=50"`
	Location        string    `json:"location" validate:"required,max=200"`
	EventDate       time.Time `json:"event_date" validate:"required"`
	MaxParticipants int32     `json:"max_participants" validate:"required,gte=1"`
	SkillLevel      string    `json:"skill_level" validate:"required,max=50"`
	Description     string    `json:"description" validate:"max=1000"`
}

type createEventResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Event   events.View `json:"event"`
}

func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.ListUpcoming(r.Context(), viewerID(r))
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	if views == nil {
		views = []events.View{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r, h.Env)
	if !ok {
		return
	}

	view, err := h.Service.GetByID(r.Context(), id, viewerID(r))
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env,
				problem.WithDetail("Event not found"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	var req createEventRequest
	if fields, err := decodeAndValidate(r, &req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env,
			problem.WithErrors(fields))
		return
	}

	id, err := h.Service.Create(r.Context(), events.CreateParams{
		Title:           req.Title,
		SportType:       req.SportType,
		Location:        req.Location,
		EventDate:       req.EventDate,
		MaxParticipants: req.MaxParticipants,
		SkillLevel:      req.SkillLevel,
		Description:     req.Description,
	}, identity.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	view, err := h.Service.GetByID(r.Context(), id, &identity.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, createEventResponse{
		Success: true,
		Message: "Event created successfully",
		Event:   *view,
	})
}

func (h *EventsHandler) Join(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	id, ok := eventID(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.Join(r.Context(), id, identity.UserID); err != nil {
		switch {
		case errors.Is(err, events.ErrNotFound):
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", err, h.Env,
				problem.WithDetail("Event not found"))
		case errors.Is(err, events.ErrEventFull):
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Join failed", err, h.Env,
				problem.WithDetail("Event is full"))
		case errors.Is(err, events.ErrAlreadyJoined):
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Join failed", err, h.Env,
				problem.WithDetail("You have already joined this event"))
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	writeJSON(w, http.StatusOK, outcome{Success: true, Message: "Joined the event successfully"})
}

func (h *EventsHandler) Leave(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	id, ok := eventID(w, r, h.Env)
	if !ok {
		return
	}

	if err := h.Service.Leave(r.Context(), id, identity.UserID); err != nil {
		if errors.Is(err, events.ErrNotJoined) {
			problem.Write(w, r, http.StatusConflict, problem.TypeConflict, "Leave failed", err, h.Env,
				problem.WithDetail("You have not joined this event"))
			return
		}
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	writeJSON(w, http.StatusOK, outcome{Success: true, Message: "Left the event successfully"})
}

func (h *EventsHandler) MyEvents(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", problem.ErrUnauthorized, h.Env)
		return
	}

	views, err := h.Service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	if views == nil {
		views = []events.View{}
	}
	writeJSON(w, http.StatusOK, views)
}

// viewerID converts an optional identity into the nullable viewer id the
// event views are computed against.
func viewerID(r *http.Request) *int64 {
	identity := middleware.IdentityFrom(r)
	if identity == nil {
		return nil
	}
	return &identity.UserID
}

// eventID parses the {id} path segment. Non-numeric ids behave like missing
// events rather than validation failures.
func eventID(w http.ResponseWriter, r *http.Request, env string) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Not found", events.ErrNotFound, env,
			problem.WithDetail("Event not found"))
		return 0, false
	}
	return id, true
}
