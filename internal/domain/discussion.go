package domain

import (
	"context"
	"time"
)

// Discussion is a single immutable post in a thread. IDs come from a
// sequence, so a smaller ID always means an earlier post; stewardship
// resolution depends on that ordering.
// swagger:model Discussion
type Discussion struct {
	ID          int64     `json:"id"`
	ThreadID    string    `json:"thread_id"`
	AuthorID    string    `json:"author_id"`
	Text        string    `json:"text"`
	ValidDate   time.Time `json:"valid_date"`
	CreatedDate time.Time `json:"created_date"`
}

// NewDiscussion returns a new Discussion. ID is set by the repository on create.
func NewDiscussion(threadID, authorID, text string, validDate, createdDate time.Time) *Discussion {
	return &Discussion{
		ThreadID:    threadID,
		AuthorID:    authorID,
		Text:        text,
		ValidDate:   validDate,
		CreatedDate: createdDate,
	}
}

// DiscussionRepository defines the interface for discussion storage.
// Discussions are append-only; there is no update or delete.
type DiscussionRepository interface {
	Create(ctx context.Context, d *Discussion) error
	// ListByThreadID returns the thread's discussions ordered by ID ascending.
	ListByThreadID(ctx context.Context, threadID string) ([]*Discussion, error)
	// ListAll returns every discussion ordered by valid date ascending, then
	// created date descending within a valid date.
	ListAll(ctx context.Context) ([]*Discussion, error)
}

// DiscussionGroup is all discussions sharing one valid date, newest first.
type DiscussionGroup struct {
	ValidDate   time.Time     `json:"valid_date"`
	Discussions []*Discussion `json:"discussions"`
}

// DiscussionService exposes the site-wide discussion listing.
type DiscussionService interface {
	// ListByValidDate groups every discussion by valid date, dates ascending.
	ListByValidDate(ctx context.Context) ([]*DiscussionGroup, error)
}
