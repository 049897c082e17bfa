package domain

import "context"

// Tag is a named label shared across events. Names are unique and act as
// identity at the API surface.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagCount is a tag with the number of events carrying it.
type TagCount struct {
	Tag       *Tag `json:"tag"`
	NumEvents int  `json:"num_events"`
}

// TagRepository defines storage for tags and event-tag links.
type TagRepository interface {
	GetByName(ctx context.Context, name string) (*Tag, error)
	Create(ctx context.Context, tag *Tag) error
	// ListByEventID returns the event's tags ordered by name.
	ListByEventID(ctx context.Context, eventID string) ([]*Tag, error)
	// HasEvent reports whether the event carries the tag.
	HasEvent(ctx context.Context, tagID, eventID string) (bool, error)
	AddEvent(ctx context.Context, tagID, eventID string) error
	RemoveEvent(ctx context.Context, tagID, eventID string) error
	// ListWithEventCounts returns every tag with its event count, by name.
	ListWithEventCounts(ctx context.Context) ([]*TagCount, error)
}

// TagCloudEntry is a tag sized for display relative to the most popular tag.
type TagCloudEntry struct {
	Tag         *Tag `json:"tag"`
	NumEvents   int  `json:"num_events"`
	DisplaySize int  `json:"display_size"`
}

/// TagEvents is the listing for one tag: the events the user may see, and a
// flag telling whether others were withheld.
type TagEvents struct {
	Events      []*Event `json:"events"`
	SomePrivate bool     `json:"some_private"`
}

// TagService defines the business logic for tagging.
type TagService interface {
	// ToggleTag sanitizes the raw name, then adds the tag to the event or
	// removes it if already present, creating the tag on first use.
	// Owner only. Returns the event's resulting tag list.
	ToggleTag(ctx context.Context, eventID, userID, rawName string) ([]*Tag, error)
	// TagCloud returns all tags with display sizes 0..5 scaled by popularity.
	TagCloud(ctx context.Context) ([]*TagCloudEntry, error)
	// EventsForTag returns the tag's events visible to the user.
	EventsForTag(ctx context.Context, tagName, userID string) (*TagEvents, error)
}
