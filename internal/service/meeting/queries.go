package meeting

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// GetByID returns a single meeting.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	m, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get meeting %s: %w", id, err)
	}
	return m, nil
}

// ListUpcoming returns meetings dated today or later, soonest first.
func (s *Service) ListUpcoming(ctx context.Context) ([]*domain.Meeting, error) {
	return s.meetings.ListUpcoming(ctx)
}

// ListPast returns meetings dated before today, most recent first.
func (s *Service) ListPast(ctx context.Context) ([]*domain.Meeting, error) {
	return s.meetings.ListPast(ctx)
}

// ListAll returns every meeting, soonest first.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Meeting, error) {
	return s.meetings.ListAll(ctx)
}

// GetNearestUpcoming returns the next scheduled meeting, or
// domain.ErrNotFound when nothing is scheduled.
func (s *Service) GetNearestUpcoming(ctx context.Context) (*domain.Meeting, error) {
	m, err := s.meetings.GetNearestUpcoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("nearest upcoming meeting: %w", err)
	}
	return m, nil
}
