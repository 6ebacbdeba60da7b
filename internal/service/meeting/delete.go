package meeting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Delete removes a meeting and everything hanging off it: attachments,
// attendance rows, owner and additional-attendee assignments, then the agenda
// items and the meeting row itself. The whole cascade runs in one
// transaction so a failure leaves the meeting intact.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		items, err := s.items.ListByMeeting(ctx, id)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}

		for _, it := range items {
			if _, err := s.attachments.DeleteByItem(ctx, it.ID); err != nil {
				return fmt.Errorf("delete attachments for item %s: %w", it.ID, err)
			}
			if _, err := s.assignments.DeleteByItem(ctx, item.AssignmentOwner, it.ID); err != nil {
				return fmt.Errorf("delete owners for item %s: %w", it.ID, err)
			}
			if _, err := s.assignments.DeleteByItem(ctx, item.AssignmentAdditionalAttendee, it.ID); err != nil {
				return fmt.Errorf("delete additional attendees for item %s: %w", it.ID, err)
			}
		}

		if _, err := s.attendance.DeleteByMeeting(ctx, id); err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}
		if _, err := s.items.DeleteByMeeting(ctx, id); err != nil {
			return fmt.Errorf("delete items: %w", err)
		}

		affected, err := s.meetings.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("delete meeting: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("meeting %s: %w", id, domain.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "meeting deleted", slog.String("meeting_id", id.String()))
	return nil
}
