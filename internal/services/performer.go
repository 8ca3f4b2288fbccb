package services

import (
	"context"
	"fmt"
	"strings"

	"eventmanagement/internal/domain"
)

type performerService struct {
	performers domain.PerformerRepository
}

// NewPerformerService creates a read-only PerformerService.
func NewPerformerService(performers domain.PerformerRepository) domain.PerformerService {
	return &performerService{performers: performers}
}

func (s *performerService) Get(ctx context.Context, id int64) (*domain.Performer, error) {
	p, err := s.performers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get performer: %w", err)
	}
	return p, nil
}

func (s *performerService) List(ctx context.Context, nameContains string) ([]*domain.Performer, error) {
	performers, err := s.performers.List(ctx, strings.TrimSpace(nameContains))
	if err != nil {
		return nil, fmt.Errorf("list performers: %w", err)
	}
	return performers, nil
}
