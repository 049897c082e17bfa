package domain

import (
	"context"
	"time"
)

// Event represents a span of weather-significant time (or a permanent,
// undated item) that threads of discussion can be attached to.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	OwnerID     string     `json:"owner_id"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsPublic    bool       `json:"is_public"`
	IsPermanent bool       `json:"is_permanent"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, ownerID string, startDate, endDate *time.Time, isPublic, isPermanent bool, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		OwnerID:     ownerID,
		StartDate:   startDate,
		EndDate:     endDate,
		IsPublic:    isPublic,
		IsPermanent: isPermanent,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventRepository defines the interface for event storage and the
// event-thread association.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// Update applies the non-nil fields and returns the updated row.
	Update(ctx context.Context, eventID string, title *string, startDate, endDate *time.Time, isPublic, isPermanent *bool) (*Event, error)
	// ListTimeline returns events owned by the user or public, newest first.
	ListTimeline(ctx context.Context, userID string) ([]*Event, error)
	// ListAll returns every event. The search fallback path filters in memory.
	ListAll(ctx context.Context) ([]*Event, error)
	// ListByAllTagNames returns events tagged with every one of the given
	// names (AND across tags), ordered by start date.
	ListByAllTagNames(ctx context.Context, names []string) ([]*Event, error)
	// ListSpanning returns dated events whose [start, end] range contains the
	// given instant, ordered by start date.
	ListSpanning(ctx context.Context, at time.Time) ([]*Event, error)
	// ListPinnedBy returns events the user has pinned, most recent pin first.
	ListPinnedBy(ctx context.Context, userID string) ([]*Event, error)
	// ListByThreadID returns events the thread is associated with.
	ListByThreadID(ctx context.Context, threadID string) ([]*Event, error)
	AttachThread(ctx context.Context, eventID, threadID string) error
	DetachThread(ctx context.Context, eventID, threadID string) error
	// ReassignThread removes the thread from removeIDs and adds it to addIDs
	// in a single transaction.
	ReassignThread(ctx context.Context, threadID string, removeIDs, addIDs []string) error
}

// EventThreadView is one thread on an event page, with its discussions
// (newest first) and whether the requesting user may edit it.
type EventThreadView struct {
	Thread      *Thread       `json:"thread"`
	Discussions []*Discussion `json:"discussions"`
	AllowEdit   bool          `json:"allow_edit"`
}

// EventPage is everything shown for a single event.
type EventPage struct {
	Event    *Event             `json:"event"`
	Tags     []*Tag             `json:"tags"`
	IsPinned bool               `json:"is_pinned"`
	Threads  []*EventThreadView `json:"threads"`
}

// EventAtTime is an event spanning a requested instant, with a flag telling
// whether a given thread is already associated with it.
type EventAtTime struct {
	Event     *Event `json:"event"`
	OwnerName string `json:"owner_name"`
	HasThread bool   `json:"has_thread"`
}

// EventService defines the business logic for events.
type EventService interface {
	// CreateEvent validates date invariants, creates the event, attaches the
	// given threads, and optionally pins it for the creator.
	CreateEvent(ctx context.Context, event *Event, threadIDs []string, pin bool) (*Event, error)
	// GetEventPage returns the event with tags, pin status, and threads.
	// Returns ErrForbidden when the event is private and not owned by userID.
	GetEventPage(ctx context.Context, eventID, userID string) (*EventPage, error)
	// UpdateEvent applies the non-nil fields. Owner only.
	UpdateEvent(ctx context.Context, eventID, userID string, title *string, startDate, endDate *time.Time, isPublic, isPermanent *bool) (*Event, error)
	// ListTimeline returns events owned by the user or shared publicly.
	ListTimeline(ctx context.Context, userID string) ([]*Event, error)
	// EventsAtTime returns visible events spanning the instant, with the
	// association flag set when threadID is non-empty.
	EventsAtTime(ctx context.Context, at time.Time, threadID, userID string) ([]*EventAtTime, error)
	// SendInvitations emails an invitation to each address on behalf of the
	// event owner. Returns the number sent and the addresses that failed.
	SendInvitations(ctx context.Context, eventID, ownerID string, emails []string) (sent int, failed []string, err error)
}
