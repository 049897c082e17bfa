package domain

import (
	"context"
	"time"
)

// Thread is a chronologically-anchored line of discussion. Its valid date is
// the forecast time it is about, which is independent of when anyone posted
// to it. A frozen (non-extensible) thread accepts no new discussions.
// swagger:model Thread
type Thread struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ValidDate    time.Time `json:"valid_date"`
	IsExtensible bool      `json:"is_extensible"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewThread returns a new Thread. ID is typically set by the repository on create.
func NewThread(title string, validDate time.Time, isExtensible bool, createdAt, updatedAt time.Time) *Thread {
	return &Thread{
		Title:        title,
		ValidDate:    validDate,
		IsExtensible: isExtensible,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ThreadRepository defines the interface for thread storage.
type ThreadRepository interface {
	Create(ctx context.Context, thread *Thread) error
	GetByID(ctx context.Context, id string) (*Thread, error)
	// Update applies the non-nil fields and returns the updated row.
	Update(ctx context.Context, threadID string, title *string, validDate *time.Time) (*Thread, error)
	SetExtensible(ctx context.Context, threadID string, extensible bool) error
	// ListAll returns every thread ordered by valid date.
	ListAll(ctx context.Context) ([]*Thread, error)
	// ListByEventID returns threads associated with the event, ordered by
	// valid date.
	ListByEventID(ctx context.Context, eventID string) ([]*Thread, error)
	// ListByValidDateRange returns threads with valid_date in [from, to],
	// ordered by valid date.
	ListByValidDateRange(ctx context.Context, from, to time.Time) ([]*Thread, error)
	// ListRecentByAuthor returns threads containing a discussion written by
	// the user and created since the given time, ordered by the most recent
	// discussion first.
	ListRecentByAuthor(ctx context.Context, userID string, since time.Time) ([]*Thread, error)
}

// ThreadPage is everything shown for a single thread.
type ThreadPage struct {
	Thread      *Thread       `json:"thread"`
	Events      []*Event      `json:"events"`
	Discussions []*Discussion `json:"discussions"`
	StewardID   string        `json:"steward_id"`
	AllowEdit   bool          `json:"allow_edit"`
}

// ThreadService defines the business logic for threads and their discussions.
type ThreadService interface {
	// CreateThread creates a thread with exactly one initial discussion and
	// attaches it to each of the given events the user may post into
	// (public or owned).
	CreateThread(ctx context.Context, userID, title, text string, validDate time.Time, isExtensible bool, eventIDs []string) (*Thread, error)
	// GetThreadPage returns the thread with its discussions, events, and
	// steward. Returns ErrForbidden when the thread is not accessible.
	GetThreadPage(ctx context.Context, threadID, userID string) (*ThreadPage, error)
	// ExtendThread appends a discussion. Frozen threads reject everyone,
	// steward included.
	ExtendThread(ctx context.Context, threadID, userID, text string) (*Discussion, error)
	// UpdateThread changes title and/or valid date. Steward only, and only
	// while the thread is extensible.
	UpdateThread(ctx context.Context, threadID, userID string, title *string, validDate *time.Time) (*Thread, error)
	// ToggleFrozen flips IsExtensible and returns the new frozen state:
	// true means the thread is now frozen.
	ToggleFrozen(ctx context.Context, threadID string) (frozen bool, err error)
	// ReassignEvents removes the thread from every candidate event not
	// selected and adds it to every selected one. Steward only; every
	// candidate must exist and be owned by the caller or nothing changes.
	ReassignEvents(ctx context.Context, threadID, userID string, allEventIDs, selectedEventIDs []string) error
	// ThreadsForPeriod returns accessible threads with valid dates in
	// [from, to], ordered by valid date.
	ThreadsForPeriod(ctx context.Context, from, to time.Time, userID string) ([]*Thread, error)
	// RecentThreads returns threads the user posted to in the recent window.
	RecentThreads(ctx context.Context, userID string) ([]*Thread, error)
}
