package events

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrEventFull     = errors.New("event is full")
	ErrAlreadyJoined = errors.New("already joined this event")
	ErrNotJoined     = errors.New("not joined to this event")
)

type Event struct {
	ID              int64
	Title           string
	SportType       string
	Location        string
	EventDate       time.Time
	MaxParticipants int32
	SkillLevel      string
	Description     string
	CreatorID       int64
	CreatedAt       time.Time
	IsActive        bool
}

// View is an Event enriched with viewer-dependent derived fields: the live
// participant count and whether the requesting user holds a membership.
type View struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	SportType           string    `json:"sport_type"`
	Location            string    `json:"location"`
	EventDate           time.Time `json:"event_date"`
	MaxParticipants     int32     `json:"max_participants"`
	CurrentParticipants int64     `json:"current_participants"`
	SkillLevel          string    `json:"skill_level"`
	Description         string    `json:"description"`
	CreatorName         string    `json:"creator_name"`
	CreatedAt           time.Time `json:"created_at"`
	IsJoined            bool      `json:"is_joined"`
}

type CreateParams struct {
	Title           string
	SportType       string
	Location        string
	EventDate       time.Time
	MaxParticipants int32
	SkillLevel      string
	Description     string
}

type Repository interface {
	// ListUpcoming returns active events strictly in the future, ascending by
	// event date. viewerID, when set, drives the IsJoined field.
	ListUpcoming(ctx context.Context, viewerID *int64) ([]View, error)
	// GetByID has no active or date filtering: past and inactive events stay
	// fetchable by id. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id int64, viewerID *int64) (*View, error)
	// ListForUser returns the events the user holds a membership in,
	// ascending by event date.
	ListForUser(ctx context.Context, userID int64) ([]View, error)

	// Insert creates the event row and returns its id.
	Insert(ctx context.Context, params CreateParams, creatorID int64) (int64, error)
	// GetForUpdate loads an event row, locking it for the duration of the
	// surrounding transaction so capacity checks serialize per event.
	GetForUpdate(ctx context.Context, id int64) (*Event, error)
	CountParticipants(ctx context.Context, eventID int64) (int64, error)
	IsParticipant(ctx context.Context, eventID, userID int64) (bool, error)
	// AddParticipant inserts a membership. The composite unique index on
	// (event_id, user_id) surfaces as ErrAlreadyJoined.
	AddParticipant(ctx context.Context, eventID, userID int64) error
	// RemoveParticipant reports whether a membership row was deleted.
	RemoveParticipant(ctx context.Context, eventID, userID int64) (bool, error)

	// WithTx runs fn against a transaction-scoped repository, committing on
	// nil and rolling back on error.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo Repository) error) error
}
