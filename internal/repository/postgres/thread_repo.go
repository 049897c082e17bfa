package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type threadRepository struct {
	DB *sql.DB
}

// NewThreadRepository returns a domain.ThreadRepository implemented with Postgres.
func NewThreadRepository(db *sql.DB) domain.ThreadRepository {
	return &threadRepository{DB: db}
}

const threadColumns = `id, title, valid_date, is_extensible, created_at, updated_at`

func (r *threadRepository) Create(ctx context.Context, t *domain.Thread) error {
	query := `
		INSERT INTO threads (title, valid_date, is_extensible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, t.Title, t.ValidDate, t.IsExtensible, t.CreatedAt, t.UpdatedAt).Scan(&t.ID)
}

func (r *threadRepository) GetByID(ctx context.Context, id string) (*domain.Thread, error) {
	query := `SELECT ` + threadColumns + ` FROM threads WHERE id = $1`
	t := &domain.Thread{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Title, &t.ValidDate, &t.IsExtensible, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *threadRepository) Update(ctx context.Context, threadID string, title *string, validDate *time.Time) (*domain.Thread, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if validDate != nil {
		setClauses = append(setClauses, fmt.Sprintf("valid_date = $%d", n))
		args = append(args, *validDate)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, threadID)
	}
	args = append(args, threadID)
	query := fmt.Sprintf(`
		UPDATE threads SET %s
		WHERE id = $%d
		RETURNING `+threadColumns, strings.Join(setClauses, ", "), n)
	t := &domain.Thread{}
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(&t.ID, &t.Title, &t.ValidDate, &t.IsExtensible, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *threadRepository) SetExtensible(ctx context.Context, threadID string, extensible bool) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE threads SET is_extensible = $2, updated_at = NOW() WHERE id = $1`, threadID, extensible)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *threadRepository) queryThreads(ctx context.Context, query string, args ...interface{}) ([]*domain.Thread, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	threads := make([]*domain.Thread, 0)
	for rows.Next() {
		t := &domain.Thread{}
		if err := rows.Scan(&t.ID, &t.Title, &t.ValidDate, &t.IsExtensible, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

func (r *threadRepository) ListAll(ctx context.Context) ([]*domain.Thread, error) {
	query := `SELECT ` + threadColumns + ` FROM threads ORDER BY valid_date`
	return r.queryThreads(ctx, query)
}

func (r *threadRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Thread, error) {
	query := `
		SELECT t.id, t.title, t.valid_date, t.is_extensible, t.created_at, t.updated_at
		FROM threads t
		JOIN event_threads et ON et.thread_id = t.id
		WHERE et.event_id = $1
		ORDER BY t.valid_date
	`
	return r.queryThreads(ctx, query, eventID)
}

func (r *threadRepository) ListByValidDateRange(ctx context.Context, from, to time.Time) ([]*domain.Thread, error) {
	query := `
		SELECT ` + threadColumns + `
		FROM threads
		WHERE valid_date >= $1 AND valid_date <= $2
		ORDER BY valid_date
	`
	return r.queryThreads(ctx, query, from, to)
}

func (r *threadRepository) ListRecentByAuthor(ctx context.Context, userID string, since time.Time) ([]*domain.Thread, error) {
	query := `
		SELECT t.id, t.title, t.valid_date, t.is_extensible, t.created_at, t.updated_at
		FROM threads t
		JOIN discussions d ON d.thread_id = t.id
		WHERE d.author_id = $1 AND d.created_date >= $2
		GROUP BY t.id, t.title, t.valid_date, t.is_extensible, t.created_at, t.updated_at
		ORDER BY MAX(d.created_date) DESC
	`
	return r.queryThreads(ctx, query, userID, since)
}
