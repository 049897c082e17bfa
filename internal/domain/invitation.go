package domain

import (
	"context"
	"time"
)

// EventInvitation records an invitation emailed for an event.
// swagger:model EventInvitation
type EventInvitation struct {
	ID      string    `json:"id"`
	EventID string    `json:"event_id"`
	Email   string    `json:"email"`
	SentAt  time.Time `json:"sent_at"`
}

// EventInvitationRepository defines storage for event invitations.
type EventInvitationRepository interface {
	Create(ctx context.Context, inv *EventInvitation) error
	ListByEventID(ctx context.Context, eventID string) ([]*EventInvitation, error)
}

// EventInvitationEmailData is the payload for an invitation email.
type EventInvitationEmailData struct {
	Email      string
	OwnerName  string
	EventTitle string
	EventID    string
}

// Mailer sends email on behalf of the application.
type Mailer interface {
	SendEventInvitation(ctx context.Context, data *EventInvitationEmailData) error
}
