package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportmeet/server/internal/domain/events"
)

var _ events.Repository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *EventRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

// viewColumns joins the creator name and computes the two derived fields:
// the live participant count and whether $1 (nullable viewer id) is joined.
const viewColumns = `
SELECT e.id, e.title, e.sport_type, e.location, e.event_date, e.max_participants,
       e.skill_level, e.description, e.created_at, u.name,
       (SELECT count(*) FROM event_participants p WHERE p.event_id = e.id),
       EXISTS (
         SELECT 1 FROM event_participants p
          WHERE p.event_id = e.id AND p.user_id = $1::bigint
       )
  FROM events e
  JOIN users u ON u.id = e.creator_id
`

func (r *EventRepository) ListUpcoming(ctx context.Context, viewerID *int64) ([]events.View, error) {
	rows, err := r.queryer().Query(ctx, viewColumns+`
 WHERE e.is_active AND e.event_date > now()
 ORDER BY e.event_date ASC
`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	defer rows.Close()

	return scanViews(rows)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64, viewerID *int64) (*events.View, error) {
	row := r.queryer().QueryRow(ctx, viewColumns+`
 WHERE e.id = $2
`, viewerID, id)

	view, err := scanView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return view, nil
}

func (r *EventRepository) ListForUser(ctx context.Context, userID int64) ([]events.View, error) {
	rows, err := r.queryer().Query(ctx, viewColumns+`
 WHERE EXISTS (
         SELECT 1 FROM event_participants p
          WHERE p.event_id = e.id AND p.user_id = $1::bigint
       )
 ORDER BY e.event_date ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user events: %w", err)
	}
	defer rows.Close()

	return scanViews(rows)
}

func (r *EventRepository) Insert(ctx context.Context, params events.CreateParams, creatorID int64) (int64, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (title, sport_type, location, event_date, max_participants,
                    skill_level, description, creator_id, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
RETURNING id
`, params.Title, params.SportType, params.Location, params.EventDate,
		params.MaxParticipants, params.SkillLevel, params.Description, creatorID)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return id, nil
}

func (r *EventRepository) GetForUpdate(ctx context.Context, id int64) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, title, sport_type, location, event_date, max_participants,
       skill_level, description, creator_id, created_at, is_active
  FROM events
 WHERE id = $1
   FOR UPDATE
`, id)

	var event events.Event
	var eventDate, createdAt pgtype.Timestamptz
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&event.SportType,
		&event.Location,
		&eventDate,
		&event.MaxParticipants,
		&event.SkillLevel,
		&event.Description,
		&event.CreatorID,
		&createdAt,
		&event.IsActive,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event for update: %w", err)
	}
	if eventDate.Valid {
		event.EventDate = eventDate.Time
	}
	if createdAt.Valid {
		event.CreatedAt = createdAt.Time
	}
	return &event, nil
}

func (r *EventRepository) CountParticipants(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := r.queryer().QueryRow(ctx,
		`SELECT count(*) FROM event_participants WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return count, nil
}

func (r *EventRepository) IsParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	var joined bool
	err := r.queryer().QueryRow(ctx, `
SELECT EXISTS (
  SELECT 1 FROM event_participants WHERE event_id = $1 AND user_id = $2
)`, eventID, userID).Scan(&joined)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return joined, nil
}

func (r *EventRepository) AddParticipant(ctx context.Context, eventID, userID int64) error {
	_, err := r.queryer().Exec(ctx, `
INSERT INTO event_participants (event_id, user_id)
VALUES ($1, $2)
`, eventID, userID)
	if err != nil {
		if isUniqueViolation(err) {
			return events.ErrAlreadyJoined
		}
		return fmt.Errorf("add participant: %w", err)
	}
	return nil
}

func (r *EventRepository) RemoveParticipant(ctx context.Context, eventID, userID int64) (bool, error) {
	tag, err := r.queryer().Exec(ctx, `
DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2
`, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("remove participant: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo events.Repository) error) error {
	if r.tx != nil {
		return fn(ctx, r)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &EventRepository{pool: r.pool, tx: tx}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func scanViews(rows pgx.Rows) ([]events.View, error) {
	var views []events.View
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return views, nil
}

func scanView(row pgx.Row) (*events.View, error) {
	var view events.View
	var eventDate, createdAt pgtype.Timestamptz
	if err := row.Scan(
		&view.ID,
		&view.Title,
		&view.SportType,
		&view.Location,
		&eventDate,
		&view.MaxParticipants,
		&view.SkillLevel,
		&view.Description,
		&createdAt,
		&view.CreatorName,
		&view.CurrentParticipants,
		&view.IsJoined,
	); err != nil {
		return nil, err
	}
	if eventDate.Valid {
		view.EventDate = eventDate.Time
	}
	if createdAt.Valid {
		view.CreatedAt = createdAt.Time
	}
	return &view, nil
}
