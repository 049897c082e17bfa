package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func eventIDs(events []*domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func threadIDs(threads []*domain.Thread) []string {
	out := make([]string, 0, len(threads))
	for _, t := range threads {
		out = append(out, t.ID)
	}
	return out
}

func TestSearch_MonthSentinelEqualsAllTwelveMonths(t *testing.T) {
	store := newFakeStore()
	store.seedEvent("ev-jan", "January outage", "alice", datePtr(2026, 1, 5), datePtr(2026, 1, 7), true, false)
	store.seedEvent("ev-jul", "July maintenance", "alice", datePtr(2026, 7, 1), datePtr(2026, 7, 2), true, false)
	store.seedEvent("ev-perm", "Standing watch", "alice", nil, nil, true, true)

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	sentinel, err := svc.Search(context.Background(), domain.SearchQuery{Months: []int{domain.MonthAll}}, "bob")
	require.NoError(t, err)

	all := make([]int, 0, 12)
	for m := 1; m <= 12; m++ {
		all = append(all, m)
	}
	explicit, err := svc.Search(context.Background(), domain.SearchQuery{Months: all}, "bob")
	require.NoError(t, err)

	// The sentinel additionally matches events with no dates at all.
	assert.ElementsMatch(t, []string{"ev-jan", "ev-jul", "ev-perm"}, eventIDs(sentinel.Events))
	assert.ElementsMatch(t, []string{"ev-jan", "ev-jul"}, eventIDs(explicit.Events))
}

func TestSearch_EmptyMonthsMatchesNothing(t *testing.T) {
	store := newFakeStore()
	store.seedEvent("ev-jan", "January outage", "alice", datePtr(2026, 1, 5), datePtr(2026, 1, 7), true, false)
	th := store.seedThread("th-1", "January review", date(2026, 1, 6), true)
	store.seedDiscussion(1, th.ID, "alice", "first", th.ValidDate)

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	res, err := svc.Search(context.Background(), domain.SearchQuery{Text: "January"}, "alice")
	require.NoError(t, err)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Threads)
}

func TestSearch_EventMatchesOnStartOrEndMonth(t *testing.T) {
	store := newFakeStore()
	// Spans the January/February boundary.
	store.seedEvent("ev-span", "Long storm", "alice", datePtr(2026, 1, 28), datePtr(2026, 2, 3), true, false)

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	for _, month := range []int{1, 2} {
		res, err := svc.Search(context.Background(), domain.SearchQuery{Months: []int{month}}, "bob")
		require.NoError(t, err)
		assert.Equal(t, []string{"ev-span"}, eventIDs(res.Events), "month %d", month)
	}

	res, err := svc.Search(context.Background(), domain.SearchQuery{Months: []int{3}}, "bob")
	require.NoError(t, err)
	assert.Empty(t, res.Events)
}

func TestSearch_PermanentEventOnlyMatchesSentinel(t *testing.T) {
	store := newFakeStore()
	store.seedEvent("ev-perm", "Standing watch", "alice", nil, nil, true, true)

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	res, err := svc.Search(context.Background(), domain.SearchQuery{Months: []int{1, 2, 3}}, "bob")
	require.NoError(t, err)
	assert.Empty(t, res.Events)

	res, err = svc.Search(context.Background(), domain.SearchQuery{Months: []int{domain.MonthAll}}, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-perm"}, eventIDs(res.Events))
}

// The month-only path returns every event in the month regardless of
// visibility, while the tag path filters private events out. Both behaviors
// are intentional; this test documents the asymmetry.
func TestSearch_VisibilityAsymmetryBetweenTagAndMonthPaths(t *testing.T) {
	store := newFakeStore()
	store.seedEvent("ev-a", "Public January", "xavier", datePtr(2026, 1, 1), datePtr(2026, 1, 3), true, false)
	store.seedEvent("ev-b", "Private February", "xavier", datePtr(2026, 2, 1), datePtr(2026, 2, 2), false, false)
	store.seedTag("tag-1", "weather", "ev-a", "ev-b")

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	// Month-only: the stranger sees the private event.
	res, err := svc.Search(context.Background(), domain.SearchQuery{Months: []int{2}}, "yolanda")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-b"}, eventIDs(res.Events))

	// Tag path: the same query through a tag hides it.
	res, err = svc.Search(context.Background(), domain.SearchQuery{Tags: []string{"weather"}, Months: []int{2}}, "yolanda")
	require.NoError(t, err)
	assert.Empty(t, res.Events)

	// The owner sees it either way.
	res, err = svc.Search(context.Background(), domain.SearchQuery{Tags: []string{"weather"}, Months: []int{2}}, "xavier")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-b"}, eventIDs(res.Events))
}

func TestSearch_TagIntersection(t *testing.T) {
	store := newFakeStore()
	store.seedEvent("ev-1", "Both tags", "alice", datePtr(2026, 3, 1), datePtr(2026, 3, 2), true, false)
	store.seedEvent("ev-2", "Only weather", "alice", datePtr(2026, 3, 5), datePtr(2026, 3, 6), true, false)
	store.seedTag("tag-1", "weather", "ev-1", "ev-2")
	store.seedTag("tag-2", "severe", "ev-1")

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	res, err := svc.Search(context.Background(), domain.SearchQuery{
		Tags:   []string{"weather", "severe"},
		Months: []int{domain.MonthAll},
	}, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-1"}, eventIDs(res.Events))
}

func TestSearch_EmptyTextMatchesNoThreads(t *testing.T) {
	store := newFakeStore()
	th := store.seedThread("th-1", "January review", date(2026, 1, 6), true)
	store.seedDiscussion(1, th.ID, "alice", "first", th.ValidDate)

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	res, err := svc.Search(context.Background(), domain.SearchQuery{Months: []int{domain.MonthAll}}, "alice")
	require.NoError(t, err)
	assert.Empty(t, res.Threads)
}

func TestSearch_ThreadTextMatching(t *testing.T) {
	store := newFakeStore()
	titleHit := store.seedThread("th-title", "Heavy SNOW expected", date(2026, 1, 6), true)
	store.seedDiscussion(1, titleHit.ID, "alice", "nothing notable", titleHit.ValidDate)

	bodyHit := store.seedThread("th-body", "Midweek outlook", date(2026, 1, 8), true)
	store.seedDiscussion(2, bodyHit.ID, "alice", "chance of snow after midnight", bodyHit.ValidDate)

	miss := store.seedThread("th-miss", "Quiet pattern", date(2026, 1, 9), true)
	store.seedDiscussion(3, miss.ID, "alice", "sunny and calm", miss.ValidDate)

	wrongMonth := store.seedThread("th-month", "Snow melt", date(2026, 4, 2), true)
	store.seedDiscussion(4, wrongMonth.ID, "alice", "snow", wrongMonth.ValidDate)

	svc := NewSearchService(store.events, store.threads, store.discussions, time.Second)

	res, err := svc.Search(context.Background(), domain.SearchQuery{Text: "snow", Months: []int{1}}, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"th-title", "th-body"}, threadIDs(res.Threads))
}
