package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// In-memory fakes shared by the service tests. newFakeStore wires them
// together so the event-thread and event-tag links are visible from both
// sides, the way the real schema behaves.

type fakeStore struct {
	events      *fakeEventRepo
	threads     *fakeThreadRepo
	discussions *fakeDiscussionRepo
	tags        *fakeTagRepo
	pins        *fakePinRepo
	users       *fakeUserRepo
	invitations *fakeInvitationRepo
	mailer      *fakeMailer
}

func newFakeStore() *fakeStore {
	tags := &fakeTagRepo{
		byName: make(map[string]*domain.Tag),
		events: make(map[string]map[string]struct{}),
	}
	events := &fakeEventRepo{
		byID:        make(map[string]*domain.Event),
		threadLinks: make(map[string]map[string]struct{}),
		tags:        tags,
	}
	discussions := &fakeDiscussionRepo{}
	threads := &fakeThreadRepo{
		byID:        make(map[string]*domain.Thread),
		events:      events,
		discussions: discussions,
	}
	return &fakeStore{
		events:      events,
		threads:     threads,
		discussions: discussions,
		tags:        tags,
		pins:        &fakePinRepo{byKey: make(map[string]*domain.Pin)},
		users:       &fakeUserRepo{byID: make(map[string]*domain.User)},
		invitations: &fakeInvitationRepo{},
		mailer:      &fakeMailer{},
	}
}

// seedEvent creates an event directly in the store.
func (s *fakeStore) seedEvent(id, title, ownerID string, start, end *time.Time, isPublic, isPermanent bool) *domain.Event {
	e := &domain.Event{
		ID: id, Title: title, OwnerID: ownerID,
		StartDate: start, EndDate: end,
		IsPublic: isPublic, IsPermanent: isPermanent,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.events.byID[id] = e
	return e
}

func (s *fakeStore) seedThread(id, title string, validDate time.Time, extensible bool) *domain.Thread {
	t := &domain.Thread{
		ID: id, Title: title, ValidDate: validDate, IsExtensible: extensible,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	s.threads.byID[id] = t
	return t
}

func (s *fakeStore) seedDiscussion(id int64, threadID, authorID, text string, validDate time.Time) *domain.Discussion {
	d := &domain.Discussion{
		ID: id, ThreadID: threadID, AuthorID: authorID, Text: text,
		ValidDate: validDate, CreatedDate: time.Now(),
	}
	s.discussions.list = append(s.discussions.list, d)
	if id >= s.discussions.nextID {
		s.discussions.nextID = id + 1
	}
	return d
}

func (s *fakeStore) link(eventID, threadID string) {
	if s.events.threadLinks[eventID] == nil {
		s.events.threadLinks[eventID] = make(map[string]struct{})
	}
	s.events.threadLinks[eventID][threadID] = struct{}{}
}

func (s *fakeStore) seedTag(id, name string, eventIDs ...string) *domain.Tag {
	tag := &domain.Tag{ID: id, Name: name}
	s.tags.byName[name] = tag
	set := make(map[string]struct{})
	for _, e := range eventIDs {
		set[e] = struct{}{}
	}
	s.tags.events[id] = set
	return tag
}

type fakeEventRepo struct {
	byID        map[string]*domain.Event
	nextID      int
	threadLinks map[string]map[string]struct{} // eventID -> threadIDs
	tags        *fakeTagRepo
	err         error // if set, Create returns this error
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, eventID string, title *string, startDate, endDate *time.Time, isPublic, isPermanent *bool) (*domain.Event, error) {
	e, ok := f.byID[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		e.Title = *title
	}
	if startDate != nil {
		e.StartDate = startDate
	}
	if endDate != nil {
		e.EndDate = endDate
	}
	if isPublic != nil {
		e.IsPublic = *isPublic
	}
	if isPermanent != nil {
		e.IsPermanent = *isPermanent
	}
	return e, nil
}

func (f *fakeEventRepo) sorted() []*domain.Event {
	out := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeEventRepo) ListTimeline(ctx context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.sorted() {
		if e.OwnerID == userID || e.IsPublic {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return f.sorted(), nil
}

func (f *fakeEventRepo) ListByAllTagNames(ctx context.Context, names []string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.sorted() {
		hasAll := true
		for _, name := range names {
			tag, ok := f.tags.byName[name]
			if !ok {
				hasAll = false
				break
			}
			if _, ok := f.tags.events[tag.ID][e.ID]; !ok {
				hasAll = false
				break
			}
		}
		if hasAll {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListSpanning(ctx context.Context, at time.Time) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.sorted() {
		if e.StartDate == nil || e.EndDate == nil {
			continue
		}
		if !e.StartDate.After(at) && !e.EndDate.Before(at) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListPinnedBy(ctx context.Context, userID string) ([]*domain.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListByThreadID(ctx context.Context, threadID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.sorted() {
		if _, ok := f.threadLinks[e.ID][threadID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) AttachThread(ctx context.Context, eventID, threadID string) error {
	if f.threadLinks[eventID] == nil {
		f.threadLinks[eventID] = make(map[string]struct{})
	}
	f.threadLinks[eventID][threadID] = struct{}{}
	return nil
}

func (f *fakeEventRepo) DetachThread(ctx context.Context, eventID, threadID string) error {
	delete(f.threadLinks[eventID], threadID)
	return nil
}

func (f *fakeEventRepo) ReassignThread(ctx context.Context, threadID string, removeIDs, addIDs []string) error {
	for _, id := range removeIDs {
		delete(f.threadLinks[id], threadID)
	}
	for _, id := range addIDs {
		if f.threadLinks[id] == nil {
			f.threadLinks[id] = make(map[string]struct{})
		}
		f.threadLinks[id][threadID] = struct{}{}
	}
	return nil
}

type fakeThreadRepo struct {
	byID        map[string]*domain.Thread
	nextID      int
	events      *fakeEventRepo
	discussions *fakeDiscussionRepo
}

func (f *fakeThreadRepo) Create(ctx context.Context, t *domain.Thread) error {
	f.nextID++
	t.ID = fmt.Sprintf("th-%d", f.nextID)
	f.byID[t.ID] = t
	return nil
}

func (f *fakeThreadRepo) GetByID(ctx context.Context, id string) (*domain.Thread, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeThreadRepo) Update(ctx context.Context, threadID string, title *string, validDate *time.Time) (*domain.Thread, error) {
	t, ok := f.byID[threadID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if title != nil {
		t.Title = *title
	}
	if validDate != nil {
		t.ValidDate = *validDate
	}
	return t, nil
}

func (f *fakeThreadRepo) SetExtensible(ctx context.Context, threadID string, extensible bool) error {
	t, ok := f.byID[threadID]
	if !ok {
		return domain.ErrNotFound
	}
	t.IsExtensible = extensible
	return nil
}

func (f *fakeThreadRepo) sorted() []*domain.Thread {
	out := make([]*domain.Thread, 0, len(f.byID))
	for _, t := range f.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidDate.Before(out[j].ValidDate) })
	return out
}

func (f *fakeThreadRepo) ListAll(ctx context.Context) ([]*domain.Thread, error) {
	return f.sorted(), nil
}

func (f *fakeThreadRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Thread, error) {
	var out []*domain.Thread
	for _, t := range f.sorted() {
		if _, ok := f.events.threadLinks[eventID][t.ID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeThreadRepo) ListByValidDateRange(ctx context.Context, from, to time.Time) ([]*domain.Thread, error) {
	var out []*domain.Thread
	for _, t := range f.sorted() {
		if !t.ValidDate.Before(from) && !t.ValidDate.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeThreadRepo) ListRecentByAuthor(ctx context.Context, userID string, since time.Time) ([]*domain.Thread, error) {
	latest := make(map[string]time.Time)
	for _, d := range f.discussions.list {
		if d.AuthorID != userID || d.CreatedDate.Before(since) {
			continue
		}
		if d.CreatedDate.After(latest[d.ThreadID]) {
			latest[d.ThreadID] = d.CreatedDate
		}
	}
	var out []*domain.Thread
	for id := range latest {
		if t, ok := f.byID[id]; ok {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return latest[out[i].ID].After(latest[out[j].ID]) })
	return out, nil
}

type fakeDiscussionRepo struct {
	list   []*domain.Discussion
	nextID int64
	err    error
}

func (f *fakeDiscussionRepo) Create(ctx context.Context, d *domain.Discussion) error {
	if f.err != nil {
		return f.err
	}
	if f.nextID == 0 {
		f.nextID = 1
	}
	d.ID = f.nextID
	f.nextID++
	f.list = append(f.list, d)
	return nil
}

func (f *fakeDiscussionRepo) ListByThreadID(ctx context.Context, threadID string) ([]*domain.Discussion, error) {
	var out []*domain.Discussion
	for _, d := range f.list {
		if d.ThreadID == threadID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDiscussionRepo) ListAll(ctx context.Context) ([]*domain.Discussion, error) {
	out := make([]*domain.Discussion, len(f.list))
	copy(out, f.list)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ValidDate.Equal(out[j].ValidDate) {
			return out[i].ValidDate.Before(out[j].ValidDate)
		}
		return out[i].CreatedDate.After(out[j].CreatedDate)
	})
	return out, nil
}

type fakeTagRepo struct {
	byName map[string]*domain.Tag
	nextID int
	events map[string]map[string]struct{} // tagID -> eventIDs
}

func (f *fakeTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	if t, ok := f.byName[name]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	f.nextID++
	tag.ID = fmt.Sprintf("tag-%d", f.nextID)
	f.byName[tag.Name] = tag
	f.events[tag.ID] = make(map[string]struct{})
	return nil
}

func (f *fakeTagRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Tag, error) {
	var out []*domain.Tag
	for _, tag := range f.byName {
		if _, ok := f.events[tag.ID][eventID]; ok {
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Name, out[j].Name) < 0 })
	return out, nil
}

func (f *fakeTagRepo) HasEvent(ctx context.Context, tagID, eventID string) (bool, error) {
	_, ok := f.events[tagID][eventID]
	return ok, nil
}

func (f *fakeTagRepo) AddEvent(ctx context.Context, tagID, eventID string) error {
	if f.events[tagID] == nil {
		f.events[tagID] = make(map[string]struct{})
	}
	f.events[tagID][eventID] = struct{}{}
	return nil
}

func (f *fakeTagRepo) RemoveEvent(ctx context.Context, tagID, eventID string) error {
	if _, ok := f.events[tagID][eventID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.events[tagID], eventID)
	return nil
}

func (f *fakeTagRepo) ListWithEventCounts(ctx context.Context) ([]*domain.TagCount, error) {
	var out []*domain.TagCount
	for _, tag := range f.byName {
		out = append(out, &domain.TagCount{Tag: tag, NumEvents: len(f.events[tag.ID])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag.Name < out[j].Tag.Name })
	return out, nil
}

type fakePinRepo struct {
	byKey  map[string]*domain.Pin
	nextID int
}

func pinKey(ownerID, eventID string) string { return ownerID + "|" + eventID }

func (f *fakePinRepo) Get(ctx context.Context, ownerID, eventID string) (*domain.Pin, error) {
	if p, ok := f.byKey[pinKey(ownerID, eventID)]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePinRepo) Create(ctx context.Context, pin *domain.Pin) error {
	f.nextID++
	pin.ID = fmt.Sprintf("pin-%d", f.nextID)
	f.byKey[pinKey(pin.OwnerID, pin.EventID)] = pin
	return nil
}

func (f *fakePinRepo) Delete(ctx context.Context, ownerID, eventID string) error {
	key := pinKey(ownerID, eventID)
	if _, ok := f.byKey[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byKey, key)
	return nil
}

type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeInvitationRepo struct {
	created []*domain.EventInvitation
	err     error
}

func (f *fakeInvitationRepo) Create(ctx context.Context, inv *domain.EventInvitation) error {
	if f.err != nil {
		return f.err
	}
	inv.ID = fmt.Sprintf("inv-%d", len(f.created)+1)
	f.created = append(f.created, inv)
	return nil
}

func (f *fakeInvitationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.EventInvitation, error) {
	var out []*domain.EventInvitation
	for _, inv := range f.created {
		if inv.EventID == eventID {
			out = append(out, inv)
		}
	}
	return out, nil
}

type fakeMailer struct {
	sent []*domain.EventInvitationEmailData
	err  error
}

func (f *fakeMailer) SendEventInvitation(ctx context.Context, data *domain.EventInvitationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
