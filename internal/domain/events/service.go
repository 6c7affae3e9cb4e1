package events

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With().Str("component", "events").Logger(),
	}
}

func (s *Service) ListUpcoming(ctx context.Context, viewerID *int64) ([]View, error) {
	return s.repo.ListUpcoming(ctx, viewerID)
}

func (s *Service) GetByID(ctx context.Context, id int64, viewerID *int64) (*View, error) {
	return s.repo.GetByID(ctx, id, viewerID)
}

// Create inserts the event and the creator's membership in one transaction,
// so an event is never observable without its creator counted as joined.
func (s *Service) Create(ctx context.Context, params CreateParams, creatorID int64) (int64, error) {
	var eventID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Insert(ctx, params, creatorID)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
		if err := repo.AddParticipant(ctx, id, creatorID); err != nil {
			return fmt.Errorf("add creator membership: %w", err)
		}
		eventID = id
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int64("event_id", eventID).Int64("creator_id", creatorID).Msg("event created")
	return eventID, nil
}

// Join adds a membership. The event row is locked for the duration of the
// transaction, so the capacity check holds under concurrent joins; the
// composite unique index backstops the duplicate check.
func (s *Service) Join(ctx context.Context, eventID, userID int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		event, err := repo.GetForUpdate(ctx, eventID)
		if err != nil {
			return err
		}

		count, err := repo.CountParticipants(ctx, eventID)
		if err != nil {
			return fmt.Errorf("count participants: %w", err)
		}
		if count >= int64(event.MaxParticipants) {
			return ErrEventFull
		}

		joined, err := repo.IsParticipant(ctx, eventID, userID)
		if err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if joined {
			return ErrAlreadyJoined
		}

		return repo.AddParticipant(ctx, eventID, userID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Int64("event_id", eventID).Int64("user_id", userID).Msg("user joined event")
	return nil
}

func (s *Service) Leave(ctx context.Context, eventID, userID int64) error {
	removed, err := s.repo.RemoveParticipant(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("remove membership: %w", err)
	}
	if !removed {
		return ErrNotJoined
	}

	s.logger.Info().Int64("event_id", eventID).Int64("user_id", userID).Msg("user left event")
	return nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]View, error) {
	return s.repo.ListForUser(ctx, userID)
}
