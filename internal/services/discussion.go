package services

import (
	"context"
	"fmt"
	"time"

	"github.com/JakeWimberley/Weathredds/internal/domain"
)

type discussionService struct {
	discussionRepo domain.DiscussionRepository
	contextTimeout time.Duration
}

// NewDiscussionService wires a DiscussionService from its repository.
func NewDiscussionService(discussionRepo domain.DiscussionRepository, timeout time.Duration) domain.DiscussionService {
	return &discussionService{
		discussionRepo: discussionRepo,
		contextTimeout: timeout,
	}
}

func (s *discussionService) ListByValidDate(ctx context.Context) ([]*domain.DiscussionGroup, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	all, err := s.discussionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list discussions: %w", err)
	}

	// The repository orders by valid date ascending, created date descending,
	// so consecutive rows with equal valid dates form one group.
	groups := make([]*domain.DiscussionGroup, 0)
	for _, d := range all {
		n := len(groups)
		if n > 0 && groups[n-1].ValidDate.Equal(d.ValidDate) {
			groups[n-1].Discussions = append(groups[n-1].Discussions, d)
			continue
		}
		groups = append(groups, &domain.DiscussionGroup{
			ValidDate:   d.ValidDate,
			Discussions: []*domain.Discussion{d},
		})
	}
	return groups, nil
}
