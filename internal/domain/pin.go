package domain

import (
	"context"
	"time"
)

// Pin is a per-user bookmark of an event. (OwnerID, EventID) is unique.
// swagger:model Pin
type Pin struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PinRepository defines storage for pins.
type PinRepository interface {
	Get(ctx context.Context, ownerID, eventID string) (*Pin, error)
	Create(ctx context.Context, pin *Pin) error
	Delete(ctx context.Context, ownerID, eventID string) error
}

// PinService defines the business logic for pinning.
type PinService interface {
	// TogglePin pins the event for the user, or unpins it if already pinned.
	// Returns the new state: true means pinned.
	TogglePin(ctx context.Context, eventID, userID string) (pinned bool, err error)
	// ListPinned returns the user's pinned events.
	ListPinned(ctx context.Context, userID string) ([]*Event, error)
}
