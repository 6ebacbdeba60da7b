package agenda

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// GetByID returns a single agenda item.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}

// ListByMeeting returns a meeting's items in creation order.
func (s *Service) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error) {
	return s.items.ListByMeeting(ctx, meetingID)
}

// SortedByMeeting returns a meeting's items ordered by purpose priority:
// Approval, then Discussion, then Information.
func (s *Service) SortedByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error) {
	return s.items.SortedByMeeting(ctx, meetingID)
}

// ByMeetingAndTier returns a meeting's items of one tier in presentation
// order (item_order ascending, unordered items last).
func (s *Service) ByMeetingAndTier(ctx context.Context, meetingID uuid.UUID, tier int) ([]*domain.Item, error) {
	if tier != 1 && tier != 2 {
		return nil, domain.NewValidationError("tier", "must be 1 or 2")
	}
	return s.items.ByMeetingAndTier(ctx, meetingID, tier)
}

// TotalDuration returns the sum of the meeting's item durations in minutes.
// A meeting with no items has a total of zero.
func (s *Service) TotalDuration(ctx context.Context, meetingID uuid.UUID) (int, error) {
	return s.items.TotalDuration(ctx, meetingID)
}

// Owners returns the owner assignments for an item.
func (s *Service) Owners(ctx context.Context, itemID uuid.UUID) ([]domain.Assignment, error) {
	return s.assignments.ListByItem(ctx, item.AssignmentOwner, itemID)
}

// AdditionalAttendees returns the additional-attendee assignments for an item.
func (s *Service) AdditionalAttendees(ctx context.Context, itemID uuid.UUID) ([]domain.Assignment, error) {
	return s.assignments.ListByItem(ctx, item.AssignmentAdditionalAttendee, itemID)
}
