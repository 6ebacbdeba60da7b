package meeting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Advance moves a meeting to the given status. Only one-step forward moves
// along the approval chain are permitted, plus Rejected from any non-terminal
// state; anything else is domain.ErrConflict.
func (s *Service) Advance(ctx context.Context, id uuid.UUID, next domain.MeetingStatus) (*domain.Meeting, error) {
	if !next.IsValid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}

	current, err := s.meetings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get meeting %s: %w", id, err)
	}

	if !current.Status.CanTransition(next) {
		return nil, fmt.Errorf("transition %s to %s: %w", current.Status, next, domain.ErrConflict)
	}

	affected, err := s.meetings.SetStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("meeting %s: %w", id, domain.ErrNotFound)
	}

	s.log.InfoContext(ctx, "meeting status changed",
		slog.String("meeting_id", id.String()),
		slog.String("from", current.Status.String()),
		slog.String("to", next.String()),
	)

	current.Status = next
	return current, nil
}
