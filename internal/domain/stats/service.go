package stats

import (
	"context"

	"github.com/rs/zerolog"
)

// Global holds site-wide counters.
type Global struct {
	TotalUsers        int64 `json:"total_users"`
	TotalEvents       int64 `json:"total_events"`
	ActiveEvents      int64 `json:"active_events"`
	TotalParticipants int64 `json:"total_participants"`
}

// SportCount is one row of the per-sport breakdown of active events.
type SportCount struct {
	SportType string `json:"sport_type"`
	Count     int64  `json:"count"`
}

// UserStats are the per-user derived metrics. SportFriends counts distinct
// other users sharing at least one event membership with the user.
type UserStats struct {
	JoinedEvents    int64 `json:"joined_events"`
	CreatedEvents   int64 `json:"created_events"`
	CompletedEvents int64 `json:"completed_events"`
	SportFriends    int64 `json:"sport_friends"`
}

type Repository interface {
	Global(ctx context.Context) (Global, error)
	// Sports returns active events grouped by sport type, descending by count.
	Sports(ctx context.Context) ([]SportCount, error)
	User(ctx context.Context, userID int64) (UserStats, error)
}

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "stats").Logger(),
	}
}

func (s *Service) Global(ctx context.Context) (Global, error) {
	return s.repo.Global(ctx)
}

func (s *Service) Sports(ctx context.Context) ([]SportCount, error) {
	return s.repo.Sports(ctx)
}

func (s *Service) User(ctx context.Context, userID int64) (UserStats, error) {
	return s.repo.User(ctx, userID)
}
