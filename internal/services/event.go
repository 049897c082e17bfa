package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	threadRepo     domain.ThreadRepository
	discussionRepo domain.DiscussionRepository
	tagRepo        domain.TagRepository
	pinRepo        domain.PinRepository
	invitationRepo domain.EventInvitationRepository
	userRepo       domain.UserRepository
	mailer         domain.Mailer
	contextTimeout time.Duration
}

// NewEventService wires an EventService from its repositories and the mailer.
func NewEventService(eventRepo domain.EventRepository,
	threadRepo domain.ThreadRepository,
	discussionRepo domain.DiscussionRepository,
	tagRepo domain.TagRepository,
	pinRepo domain.PinRepository,
	invitationRepo domain.EventInvitationRepository,
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		threadRepo:     threadRepo,
		discussionRepo: discussionRepo,
		tagRepo:        tagRepo,
		pinRepo:        pinRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		mailer:         mailer,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, threadIDs []string, pin bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return nil, fmt.Errorf("%w: event owner is required", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(event.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !event.IsPermanent {
		if event.StartDate == nil || event.EndDate == nil {
			return nil, fmt.Errorf("%w: a non-permanent event needs both start and end dates", domain.ErrInvalidInput)
		}
		if event.EndDate.Before(*event.StartDate) {
			return nil, fmt.Errorf("%w: start date must not be after end date", domain.ErrInvalidInput)
		}
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	for _, threadID := range threadIDs {
		if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get thread: %w", err)
		}
		if err := s.eventRepo.AttachThread(ctx, event.ID, threadID); err != nil {
			return nil, fmt.Errorf("attach thread: %w", err)
		}
	}

	if pin {
		p := &domain.Pin{OwnerID: event.OwnerID, EventID: event.ID, CreatedAt: now}
		if err := s.pinRepo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("pin event: %w", err)
		}
	}
	return event, nil
}

func (s *eventService) GetEventPage(ctx context.Context, eventID, userID string) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

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

	tags, err := s.tagRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	isPinned := true
	if _, err := s.pinRepo.Get(ctx, userID, eventID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get pin: %w", err)
		}
		isPinned = false
	}

	threads, err := s.threadViewsForEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	return &domain.EventPage{
		Event:    event,
		Tags:     tags,
		IsPinned: isPinned,
		Threads:  threads,
	}, nil
}

// threadViewsForEvent loads each thread on the event with its discussions
// newest first and the per-thread edit flag for the requesting user.
func (s *eventService) threadViewsForEvent(ctx context.Context, eventID, userID string) ([]*domain.EventThreadView, error) {
	eventThreads, err := s.threadRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list event threads: %w", err)
	}
	views := make([]*domain.EventThreadView, 0, len(eventThreads))
	for _, thread := range eventThreads {
		discussions, err := s.discussionRepo.ListByThreadID(ctx, thread.ID)
		if err != nil {
			return nil, fmt.Errorf("list discussions: %w", err)
		}
		allowEdit := false
		if steward, err := domain.Steward(discussions); err == nil && steward == userID {
			allowEdit = true
		}
		views = append(views, &domain.EventThreadView{
			Thread:      thread,
			Discussions: newestFirst(discussions),
			AllowEdit:   allowEdit,
		})
	}
	return views, nil
}

// newestFirst returns the discussions in descending creation order.
func newestFirst(discussions []*domain.Discussion) []*domain.Discussion {
	out := make([]*domain.Discussion, len(discussions))
	for i, d := range discussions {
		out[len(discussions)-1-i] = d
	}
	return out
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, userID string, title *string, startDate, endDate *time.Time, isPublic, isPermanent *bool) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanEditEvent(event, userID) {
		return nil, domain.ErrForbidden
	}

	newStart := event.StartDate
	if startDate != nil {
		newStart = startDate
	}
	newEnd := event.EndDate
	if endDate != nil {
		newEnd = endDate
	}
	newPermanent := event.IsPermanent
	if isPermanent != nil {
		newPermanent = *isPermanent
	}
	if !newPermanent {
		if newStart == nil || newEnd == nil {
			return nil, fmt.Errorf("%w: a non-permanent event needs both start and end dates", domain.ErrInvalidInput)
		}
		if newEnd.Before(*newStart) {
			return nil, fmt.Errorf("%w: start date must not be after end date", domain.ErrInvalidInput)
		}
	}

	updated, err := s.eventRepo.Update(ctx, eventID, title, startDate, endDate, isPublic, isPermanent)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) ListTimeline(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	events, err := s.eventRepo.ListTimeline(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list timeline: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) EventsAtTime(ctx context.Context, at time.Time, threadID, userID string) ([]*domain.EventAtTime, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	associated := make(map[string]struct{})
	if threadID != "" {
		if _, err := s.threadRepo.GetByID(ctx, threadID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get thread: %w", err)
		}
		events, err := s.eventRepo.ListByThreadID(ctx, threadID)
		if err != nil {
			return nil, fmt.Errorf("list thread events: %w", err)
		}
		for _, e := range events {
			associated[e.ID] = struct{}{}
		}
	}

	spanning, err := s.eventRepo.ListSpanning(ctx, at)
	if err != nil {
		return nil, fmt.Errorf("list spanning events: %w", err)
	}

	out := make([]*domain.EventAtTime, 0, len(spanning))
	for _, e := range spanning {
		if !domain.CanViewEvent(e, userID) {
			continue
		}
		ownerName := ""
		if owner, err := s.userRepo.GetByID(ctx, e.OwnerID); err == nil {
			ownerName = owner.Name
		}
		_, hasThread := associated[e.ID]
		out = append(out, &domain.EventAtTime{Event: e, OwnerName: ownerName, HasThread: hasThread})
	}
	return out, nil
}

func (s *eventService) SendInvitations(ctx context.Context, eventID, ownerID string, emails []string) (sent int, failed []string, err error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil, domain.ErrNotFound
		}
		return 0, nil, fmt.Errorf("get event: %w", err)
	}
	if !domain.CanEditEvent(event, ownerID) {
		return 0, nil, domain.ErrForbidden
	}

	ownerName := "Event owner"
	if owner, err := s.userRepo.GetByID(ctx, ownerID); err == nil {
		if n := strings.TrimSpace(owner.Name); n != "" {
			ownerName = n
		} else if owner.Email != "" {
			ownerName = owner.Email
		}
	}

	for _, email := range emails {
		email = strings.TrimSpace(strings.ToLower(email))
		if email == "" {
			continue
		}
		inv := &domain.EventInvitation{
			EventID: eventID,
			Email:   email,
			SentAt:  time.Now(),
		}
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			failed = append(failed, email)
			continue
		}
		data := &domain.EventInvitationEmailData{
			Email:      email,
			OwnerName:  ownerName,
			EventTitle: event.Title,
			EventID:    event.ID,
		}
		if err := s.mailer.SendEventInvitation(ctx, data); err != nil {
			failed = append(failed, email)
			continue
		}
		sent++
	}
	return sent, failed, nil
}
