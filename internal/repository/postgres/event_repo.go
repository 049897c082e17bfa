package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, title, owner_id, start_date, end_date, is_public, is_permanent, created_at, updated_at`

func scanEvent(s interface {
	Scan(dest ...interface{}) error
}) (*domain.Event, error) {
	e := &domain.Event{}
	var startNull, endNull sql.NullTime
	err := s.Scan(&e.ID, &e.Title, &e.OwnerID, &startNull, &endNull, &e.IsPublic, &e.IsPermanent, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if startNull.Valid {
		e.StartDate = &startNull.Time
	}
	if endNull.Valid {
		e.EndDate = &endNull.Time
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, owner_id, start_date, end_date, is_public, is_permanent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var start, end sql.NullTime
	if e.StartDate != nil {
		start = sql.NullTime{Time: *e.StartDate, Valid: true}
	}
	if e.EndDate != nil {
		end = sql.NullTime{Time: *e.EndDate, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, e.Title, e.OwnerID, start, end, e.IsPublic, e.IsPermanent, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Update(ctx context.Context, eventID string, title *string, startDate, endDate *time.Time, isPublic, isPermanent *bool) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if startDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("start_date = $%d", n))
		args = append(args, *startDate)
		n++
	}
	if endDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("end_date = $%d", n))
		args = append(args, *endDate)
		n++
	}
	if isPublic != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_public = $%d", n))
		args = append(args, *isPublic)
		n++
	}
	if isPermanent != nil {
		setClauses = append(setClauses, fmt.Sprintf("is_permanent = $%d", n))
		args = append(args, *isPermanent)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) ListTimeline(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1 OR is_public = TRUE
		ORDER BY created_at DESC
	`
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date NULLS LAST`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) ListByAllTagNames(ctx context.Context, names []string) ([]*domain.Event, error) {
	if len(names) == 0 {
		return []*domain.Event{}, nil
	}
	query := `
		SELECT e.id, e.title, e.owner_id, e.start_date, e.end_date, e.is_public, e.is_permanent, e.created_at, e.updated_at
		FROM events e
		JOIN event_tags et ON et.event_id = e.id
		JOIN tags t ON t.id = et.tag_id
		WHERE t.name = ANY($1)
		GROUP BY e.id, e.title, e.owner_id, e.start_date, e.end_date, e.is_public, e.is_permanent, e.created_at, e.updated_at
		HAVING COUNT(DISTINCT t.name) = $2
		ORDER BY e.start_date NULLS LAST
	`
	return r.queryEvents(ctx, query, pq.Array(names), len(names))
}

func (r *eventRepository) ListSpanning(ctx context.Context, at time.Time) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY start_date
	`
	return r.queryEvents(ctx, query, at)
}

func (r *eventRepository) ListPinnedBy(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.owner_id, e.start_date, e.end_date, e.is_public, e.is_permanent, e.created_at, e.updated_at
		FROM events e
		JOIN pins p ON p.event_id = e.id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC
	`
	return r.queryEvents(ctx, query, userID)
}

func (r *eventRepository) ListByThreadID(ctx context.Context, threadID string) ([]*domain.Event, error) {
	query := `
		SELECT e.id, e.title, e.owner_id, e.start_date, e.end_date, e.is_public, e.is_permanent, e.created_at, e.updated_at
		FROM events e
		JOIN event_threads et ON et.event_id = e.id
		WHERE et.thread_id = $1
		ORDER BY e.start_date NULLS LAST
	`
	return r.queryEvents(ctx, query, threadID)
}

func (r *eventRepository) AttachThread(ctx context.Context, eventID, threadID string) error {
	_, err := r.DB.ExecContext(ctx, `INSERT INTO event_threads (event_id, thread_id) VALUES ($1, $2) ON CONFLICT (event_id, thread_id) DO NOTHING`, eventID, threadID)
	return err
}

func (r *eventRepository) DetachThread(ctx context.Context, eventID, threadID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM event_threads WHERE event_id = $1 AND thread_id = $2`, eventID, threadID)
	return err
}

func (r *eventRepository) ReassignThread(ctx context.Context, threadID string, removeIDs, addIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if len(removeIDs) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM event_threads WHERE thread_id = $1 AND event_id = ANY($2)`, threadID, pq.Array(removeIDs)); err != nil {
			return err
		}
	}
	for _, eventID := range addIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO event_threads (event_id, thread_id) VALUES ($1, $2) ON CONFLICT (event_id, thread_id) DO NOTHING`, eventID, threadID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
