package meeting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Update applies a partial update to a meeting. When either time bound
// changes the total duration is recomputed from the effective pair and the
// minutes-left counter is rebased against what has already been taken.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params domain.MeetingUpdateParams) (*domain.Meeting, error) {
	if params.IsEmpty() {
		return nil, domain.NewValidationError("update", "no fields to update")
	}

	current, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get meeting %s: %w", id, err)
	}

	if params.StartTime != nil || params.EndTime != nil {
		start, end := current.StartTime, current.EndTime
		if params.StartTime != nil {
			start = *params.StartTime
		}
		if params.EndTime != nil {
			end = *params.EndTime
		}

		total, err := domain.MeetingDuration(start, end)
		if err != nil {
			return nil, err
		}

		left := total - current.MinutesTaken
		params.TotalDuration = &total
		params.MinutesLeft = &left
	}

	affected, err := s.meetings.Update(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("meeting %s: %w", id, domain.ErrNotFound)
	}

	updated, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload meeting: %w", err)
	}

	s.log.InfoContext(ctx, "meeting updated", slog.String("meeting_id", id.String()))

	return updated, nil
}

// TakeMinutes records that minutes of the meeting's budget were consumed by
// an agenda item, moving them from the left counter to the taken counter.
// Negative minutes give time back.
func (s *Service) TakeMinutes(ctx context.Context, id uuid.UUID, minutes int) (*domain.Meeting, error) {
	current, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get meeting %s: %w", id, err)
	}

	taken := current.MinutesTaken + minutes
	left := current.TotalDuration - taken
	if taken < 0 || left < 0 {
		return nil, domain.NewValidationError("minutes", "exceeds the meeting's remaining budget")
	}

	params := domain.MeetingUpdateParams{MinutesTaken: &taken, MinutesLeft: &left}
	if _, err := s.meetings.Update(ctx, id, params); err != nil {
		return nil, fmt.Errorf("update minute counters: %w", err)
	}

	current.MinutesTaken = taken
	current.MinutesLeft = left
	return current, nil
}
