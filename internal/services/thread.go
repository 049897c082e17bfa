package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

// recentWindow is how far back RecentThreads looks for the user's posts.
const recentWindow = 3 * 24 * time.Hour

type threadService struct {
	threadRepo     domain.ThreadRepository
	discussionRepo domain.DiscussionRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewThreadService wires a ThreadService from its repositories.
func NewThreadService(threadRepo domain.ThreadRepository,
	discussionRepo domain.DiscussionRepository,
	eventRepo domain.EventRepository,
	timeout time.Duration,
) domain.ThreadService {
	return &threadService{
		threadRepo:     threadRepo,
		discussionRepo: discussionRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *threadService) CreateThread(ctx context.Context, userID, title, text string, validDate time.Time, isExtensible bool, eventIDs []string) (*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: the initial discussion text is required", domain.ErrInvalidInput)
	}

	// Every target event must be postable (public or owned) before anything
	// is written.
	targets := make([]*domain.Event, 0, len(eventIDs))
	for _, eventID := range eventIDs {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get event: %w", err)
		}
		if !domain.CanViewEvent(event, userID) {
			return nil, domain.ErrForbidden
		}
		targets = append(targets, event)
	}

	now := time.Now()
	thread := domain.NewThread(strings.TrimSpace(title), validDate, isExtensible, now, now)
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}

	// The creating user authors the first discussion and thereby becomes
	// the thread's steward.
	d := domain.NewDiscussion(thread.ID, userID, text, validDate, now)
	if err := s.discussionRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create discussion: %w", err)
	}

	for _, event := range targets {
		if err := s.eventRepo.AttachThread(ctx, event.ID, thread.ID); err != nil {
			return nil, fmt.Errorf("attach thread: %w", err)
		}
	}
	return thread, nil
}

func (s *threadService) GetThreadPage(ctx context.Context, threadID, userID string) (*domain.ThreadPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	thread, discussions, events, err := s.loadThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewThread(discussions, events, userID) {
		return nil, domain.ErrForbidden
	}
	steward, err := domain.Steward(discussions)
	if err != nil {
		return nil, fmt.Errorf("resolve steward: %w", err)
	}
	return &domain.ThreadPage{
		Thread:      thread,
		Events:      events,
		Discussions: newestFirst(discussions),
		StewardID:   steward,
		AllowEdit:   steward == userID,
	}, nil
}

func (s *threadService) ExtendThread(ctx context.Context, threadID, userID, text string) (*domain.Discussion, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	thread, discussions, events, err := s.loadThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !domain.CanExtendThread(thread, discussions, events, userID) {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	d := domain.NewDiscussion(thread.ID, userID, text, thread.ValidDate, now)
	if err := s.discussionRepo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create discussion: %w", err)
	}
	return d, nil
}

func (s *threadService) UpdateThread(ctx context.Context, threadID, userID string, title *string, validDate *time.Time) (*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	thread, discussions, _, err := s.loadThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditThread(thread, discussions, userID) {
		return nil, domain.ErrForbidden
	}
	updated, err := s.threadRepo.Update(ctx, threadID, title, validDate)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update thread: %w", err)
	}
	return updated, nil
}

func (s *threadService) ToggleFrozen(ctx context.Context, threadID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get thread: %w", err)
	}
	newExtensible := !thread.IsExtensible
	if err := s.threadRepo.SetExtensible(ctx, threadID, newExtensible); err != nil {
		return false, fmt.Errorf("set extensible: %w", err)
	}
	return !newExtensible, nil
}

func (s *threadService) ReassignEvents(ctx context.Context, threadID, userID string, allEventIDs, selectedEventIDs []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	_, discussions, _, err := s.loadThread(ctx, threadID)
	if err != nil {
		return err
	}
	steward, err := domain.Steward(discussions)
	if err != nil {
		return fmt.Errorf("resolve steward: %w", err)
	}
	if steward != userID {
		return domain.ErrForbidden
	}

	// Validate the whole candidate set before touching anything: a single
	// missing or foreign event aborts the call with no changes.
	for _, eventID := range allEventIDs {
		event, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}
		if !domain.CanEditEvent(event, userID) {
			return domain.ErrForbidden
		}
	}

	selected := make(map[string]struct{}, len(selectedEventIDs))
	for _, id := range selectedEventIDs {
		selected[id] = struct{}{}
	}
	removeIDs := make([]string, 0, len(allEventIDs))
	for _, id := range allEventIDs {
		if _, ok := selected[id]; !ok {
			removeIDs = append(removeIDs, id)
		}
	}
	if err := s.eventRepo.ReassignThread(ctx, threadID, removeIDs, selectedEventIDs); err != nil {
		return fmt.Errorf("reassign thread: %w", err)
	}
	return nil
}

func (s *threadService) ThreadsForPeriod(ctx context.Context, from, to time.Time, userID string) ([]*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	threads, err := s.threadRepo.ListByValidDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	accessible := make([]*domain.Thread, 0, len(threads))
	for _, thread := range threads {
		discussions, err := s.discussionRepo.ListByThreadID(ctx, thread.ID)
		if err != nil {
			return nil, fmt.Errorf("list discussions: %w", err)
		}
		events, err := s.eventRepo.ListByThreadID(ctx, thread.ID)
		if err != nil {
			return nil, fmt.Errorf("list thread events: %w", err)
		}
		if domain.CanViewThread(discussions, events, userID) {
			accessible = append(accessible, thread)
		}
	}
	return accessible, nil
}

func (s *threadService) RecentThreads(ctx context.Context, userID string) ([]*domain.Thread, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	threads, err := s.threadRepo.ListRecentByAuthor(ctx, userID, time.Now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("list recent threads: %w", err)
	}
	if threads == nil {
		threads = []*domain.Thread{}
	}
	return threads, nil
}

// loadThread fetches a thread with its discussions and associated events.
func (s *threadService) loadThread(ctx context.Context, threadID string) (*domain.Thread, []*domain.Discussion, []*domain.Event, error) {
	thread, err := s.threadRepo.GetByID(ctx, threadID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, nil, domain.ErrNotFound
		}
		return nil, nil, nil, fmt.Errorf("get thread: %w", err)
	}
	discussions, err := s.discussionRepo.ListByThreadID(ctx, threadID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list discussions: %w", err)
	}
	events, err := s.eventRepo.ListByThreadID(ctx, threadID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list thread events: %w", err)
	}
	return thread, discussions, events, nil
}
