package postgres

import (
	"context"
	"database/sql"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type discussionRepository struct {
	DB *sql.DB
}

// NewDiscussionRepository returns a domain.DiscussionRepository implemented with Postgres.
func NewDiscussionRepository(db *sql.DB) domain.DiscussionRepository {
	return &discussionRepository{DB: db}
}

func (r *discussionRepository) Create(ctx context.Context, d *domain.Discussion) error {
	query := `
		INSERT INTO discussions (thread_id, author_id, text, valid_date, created_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, d.ThreadID, d.AuthorID, d.Text, d.ValidDate, d.CreatedDate).Scan(&d.ID)
}

func (r *discussionRepository) queryDiscussions(ctx context.Context, query string, args ...interface{}) ([]*domain.Discussion, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	discussions := make([]*domain.Discussion, 0)
	for rows.Next() {
		d := &domain.Discussion{}
		if err := rows.Scan(&d.ID, &d.ThreadID, &d.AuthorID, &d.Text, &d.ValidDate, &d.CreatedDate); err != nil {
			return nil, err
		}
		discussions = append(discussions, d)
	}
	return discussions, rows.Err()
}

func (r *discussionRepository) ListByThreadID(ctx context.Context, threadID string) ([]*domain.Discussion, error) {
	// Ascending ID order: stewardship resolution relies on it.
	query := `
		SELECT id, thread_id, author_id, text, valid_date, created_date
		FROM discussions
		WHERE thread_id = $1
		ORDER BY id
	`
	return r.queryDiscussions(ctx, query, threadID)
}

func (r *discussionRepository) ListAll(ctx context.Context) ([]*domain.Discussion, error) {
	query := `
		SELECT id, thread_id, author_id, text, valid_date, created_date
		FROM discussions
		ORDER BY valid_date, created_date DESC
	`
	return r.queryDiscussions(ctx, query)
}
