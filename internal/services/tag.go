package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

const tagDisplayScale = 5

type tagService struct {
	tagRepo        domain.TagRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewTagService wires a TagService from its repositories.
func NewTagService(tagRepo domain.TagRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.TagService {
	return &tagService{
		tagRepo:        tagRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// SanitizeTagName strips characters that would break the comma-delimited tag
// list or quoting in the UI, then trims surrounding whitespace.
func SanitizeTagName(raw string) string {
	s := strings.ReplaceAll(raw, ",", "-")
	s = strings.ReplaceAll(s, `\`, "/")
	s = strings.ReplaceAll(s, "'", "`")
	return strings.TrimSpace(s)
}

func (s *tagService) ToggleTag(ctx context.Context, eventID, userID, rawName string) ([]*domain.Tag, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := SanitizeTagName(rawName)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", domain.ErrInvalidInput)
	}

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

	tag, err := s.tagRepo.GetByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		// First use of this name: create the tag and attach the event.
		tag = &domain.Tag{Name: name}
		if err := s.tagRepo.Create(ctx, tag); err != nil {
			return nil, fmt.Errorf("create tag: %w", err)
		}
		if err := s.tagRepo.AddEvent(ctx, tag.ID, eventID); err != nil {
			return nil, fmt.Errorf("add event tag: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("get tag: %w", err)
	default:
		tagged, err := s.tagRepo.HasEvent(ctx, tag.ID, eventID)
		if err != nil {
			return nil, fmt.Errorf("check event tag: %w", err)
		}
		if tagged {
			if err := s.tagRepo.RemoveEvent(ctx, tag.ID, eventID); err != nil {
				return nil, fmt.Errorf("remove event tag: %w", err)
			}
		} else {
			if err := s.tagRepo.AddEvent(ctx, tag.ID, eventID); err != nil {
				return nil, fmt.Errorf("add event tag: %w", err)
			}
		}
	}

	tags, err := s.tagRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (s *tagService) TagCloud(ctx context.Context) ([]*domain.TagCloudEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	counts, err := s.tagRepo.ListWithEventCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tag counts: %w", err)
	}
	max := 0
	for _, c := range counts {
		if c.NumEvents > max {
			max = c.NumEvents
		}
	}
	entries := make([]*domain.TagCloudEntry, 0, len(counts))
	for _, c := range counts {
		size := 0
		if max > 0 {
			size = c.NumEvents * tagDisplayScale / max
		}
		entries = append(entries, &domain.TagCloudEntry{
			Tag:         c.Tag,
			NumEvents:   c.NumEvents,
			DisplaySize: size,
		})
	}
	return entries, nil
}

func (s *tagService) EventsForTag(ctx context.Context, tagName, userID string) (*domain.TagEvents, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	tag, err := s.tagRepo.GetByName(ctx, tagName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}
	all, err := s.eventRepo.ListByAllTagNames(ctx, []string{tag.Name})
	if err != nil {
		return nil, fmt.Errorf("list tag events: %w", err)
	}
	visible := make([]*domain.Event, 0, len(all))
	somePrivate := false
	for _, e := range all {
		if domain.CanViewEvent(e, userID) {
			visible = append(visible, e)
		} else {
			somePrivate = true
		}
	}
	return &domain.TagEvents{Events: visible, SomePrivate: somePrivate}, nil
}
