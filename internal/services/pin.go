package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type pinService struct {
	pinRepo        domain.PinRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewPinService wires a PinService from its repositories.
func NewPinService(pinRepo domain.PinRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.PinService {
	return &pinService{
		pinRepo:        pinRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *pinService) TogglePin(ctx context.Context, eventID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}

	_, err := s.pinRepo.Get(ctx, userID, eventID)
	switch {
	case err == nil:
		if err := s.pinRepo.Delete(ctx, userID, eventID); err != nil {
			return false, fmt.Errorf("delete pin: %w", err)
		}
		return false, nil
	case errors.Is(err, domain.ErrNotFound):
		pin := &domain.Pin{OwnerID: userID, EventID: eventID, CreatedAt: time.Now()}
		if err := s.pinRepo.Create(ctx, pin); err != nil {
			return false, fmt.Errorf("create pin: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("get pin: %w", err)
	}
}

func (s *pinService) ListPinned(ctx context.Context, userID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListPinnedBy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list pinned events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
