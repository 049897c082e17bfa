package domain

import "context"

// MonthAll is the sentinel month value meaning "all months". When present
// anywhere in a month set it forces the month predicate true for every
// candidate, including floating events with no dates.
const MonthAll = 99

// SearchQuery is a compound discovery request. Empty months mean "match
// nothing" for both events and threads; empty text means no threads are
// returned; empty tags fall back to the month-only event listing.
type SearchQuery struct {
	Tags   []string `json:"tags"`
	Months []int    `json:"months"`
	Text   string   `json:"text"`
}

// SearchResult holds the independently computed event and thread matches.
type SearchResult struct {
	Events  []*Event  `json:"events"`
	Threads []*Thread `json:"threads"`
}

// SearchService answers compound queries over events and threads.
type SearchService interface {
	Search(ctx context.Context, query SearchQuery, userID string) (*SearchResult, error)
}
