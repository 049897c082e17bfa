package postgres

import (
	"context"
	"database/sql"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type eventInvitationRepository struct {
	DB *sql.DB
}

// NewEventInvitationRepository returns a domain.EventInvitationRepository implemented with Postgres.
func NewEventInvitationRepository(db *sql.DB) domain.EventInvitationRepository {
	return &eventInvitationRepository{DB: db}
}

func (r *eventInvitationRepository) Create(ctx context.Context, inv *domain.EventInvitation) error {
	query := `
		INSERT INTO event_invitations (event_id, email, sent_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, inv.EventID, inv.Email, inv.SentAt).Scan(&inv.ID)
}

func (r *eventInvitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventInvitation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, event_id, email, sent_at FROM event_invitations WHERE event_id = $1 ORDER BY sent_at DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invs := make([]*domain.EventInvitation, 0)
	for rows.Next() {
		inv := &domain.EventInvitation{}
		if err := rows.Scan(&inv.ID, &inv.EventID, &inv.Email, &inv.SentAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
