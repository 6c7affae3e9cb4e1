package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportmeet/server/internal/domain/stats"
)

var _ stats.Repository = (*StatsRepository)(nil)

type StatsRepository struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func (r *StatsRepository) queryer() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.pool
}

func (r *StatsRepository) Global(ctx context.Context) (stats.Global, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT (SELECT count(*) FROM users),
       (SELECT count(*) FROM events),
       (SELECT count(*) FROM events WHERE is_active AND event_date > now()),
       (SELECT count(*) FROM event_participants)
`)

	var global stats.Global
	if err := row.Scan(
		&global.TotalUsers,
		&global.TotalEvents,
		&global.ActiveEvents,
		&global.TotalParticipants,
	); err != nil {
		return stats.Global{}, fmt.Errorf("global stats: %w", err)
	}
	return global, nil
}

func (r *StatsRepository) Sports(ctx context.Context) ([]stats.SportCount, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT sport_type, count(*)
  FROM events
 WHERE is_active
 GROUP BY sport_type
 ORDER BY count(*) DESC, sport_type ASC
`)
	if err != nil {
		return nil, fmt.Errorf("sport stats: %w", err)
	}
	defer rows.Close()

	var counts []stats.SportCount
	for rows.Next() {
		var count stats.SportCount
		if err := rows.Scan(&count.SportType, &count.Count); err != nil {
			return nil, fmt.Errorf("scan sport stats: %w", err)
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sport stats: %w", err)
	}
	return counts, nil
}

func (r *StatsRepository) User(ctx context.Context, userID int64) (stats.UserStats, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT (SELECT count(*) FROM event_participants WHERE user_id = $1),
       (SELECT count(*) FROM events WHERE creator_id = $1),
       (SELECT count(*)
          FROM event_participants p
          JOIN events e ON e.id = p.event_id
         WHERE p.user_id = $1 AND e.event_date < now()),
       (SELECT count(DISTINCT p2.user_id)
          FROM event_participants p1
          JOIN event_participants p2 ON p2.event_id = p1.event_id
         WHERE p1.user_id = $1 AND p2.user_id <> $1)
`, userID)

	var user stats.UserStats
	if err := row.Scan(
		&user.JoinedEvents,
		&user.CreatedEvents,
		&user.CompletedEvents,
		&user.SportFriends,
	); err != nil {
		return stats.UserStats{}, fmt.Errorf("user stats: %w", err)
	}
	return user, nil
}
