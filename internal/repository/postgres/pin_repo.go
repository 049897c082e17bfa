package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type pinRepository struct {
	DB *sql.DB
}

// NewPinRepository returns a domain.PinRepository implemented with Postgres.
func NewPinRepository(db *sql.DB) domain.PinRepository {
	return &pinRepository{DB: db}
}

func (r *pinRepository) Get(ctx context.Context, ownerID, eventID string) (*domain.Pin, error) {
	query := `SELECT id, owner_id, event_id, created_at FROM pins WHERE owner_id = $1 AND event_id = $2`
	p := &domain.Pin{}
	err := r.DB.QueryRowContext(ctx, query, ownerID, eventID).Scan(&p.ID, &p.OwnerID, &p.EventID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *pinRepository) Create(ctx context.Context, pin *domain.Pin) error {
	query := `
		INSERT INTO pins (owner_id, event_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (owner_id, event_id) DO NOTHING
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, pin.OwnerID, pin.EventID, pin.CreatedAt).Scan(&pin.ID)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict: already pinned. Treat as success.
		return nil
	}
	return err
}

func (r *pinRepository) Delete(ctx context.Context, ownerID, eventID string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM pins WHERE owner_id = $1 AND event_id = $2`, ownerID, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
