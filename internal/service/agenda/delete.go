package agenda

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Delete removes an agenda item together with its attachments, attendance
// rows and assignments in one transaction.
func (s *Service) Delete(ctx context.Context, itemID uuid.UUID) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.delete(ctx, itemID)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "item deleted", slog.String("item_id", itemID.String()))
	return nil
}

func (s *Service) delete(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.attachments.DeleteByItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete attachments: %w", err)
	}
	if _, err := s.attendance.DeleteByItem(ctx, itemID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if _, err := s.assignments.DeleteByItem(ctx, item.AssignmentOwner, itemID); err != nil {
		return fmt.Errorf("delete owner assignments: %w", err)
	}
	if _, err := s.assignments.DeleteByItem(ctx, item.AssignmentAdditionalAttendee, itemID); err != nil {
		return fmt.Errorf("delete additional attendees: %w", err)
	}

	affected, err := s.items.Delete(ctx, itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
	}
	return nil
}
