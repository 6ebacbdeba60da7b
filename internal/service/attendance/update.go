package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Update applies attendance edits for a meeting in one transaction. Each edit
// addresses one (person, item) pair and may change only the attended flag and
// the remarks; a pair not present in the seeded set is domain.ErrNotFound and
// rolls back the whole batch.
func (s *Service) Update(ctx context.Context, meetingID uuid.UUID, edits []domain.AttendanceEdit) error {
	if len(edits) == 0 {
		return domain.NewValidationError("edits", "no edits to apply")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, edit := range edits {
			affected, err := s.attendance.UpdateFlag(ctx, meetingID, edit)
			if err != nil {
				return fmt.Errorf("update attendance for person %d item %s: %w", edit.PerNum, edit.ItemID, err)
			}
			if affected == 0 {
				return fmt.Errorf("attendance for person %d item %s: %w", edit.PerNum, edit.ItemID, domain.ErrNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "attendance updated",
		slog.String("meeting_id", meetingID.String()),
		slog.Int("edits", len(edits)),
	)

	return nil
}
