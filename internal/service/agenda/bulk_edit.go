package agenda

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// ItemEdit addresses one existing item within a bulk agenda edit.
type ItemEdit struct {
	ItemID uuid.UUID
	UpdateInput
}

// AgendaEdit is the change set produced by one pass over the curation screen:
// rows the curator edited, rows they deleted and rows they added.
type AgendaEdit struct {
	Edited  []ItemEdit
	Deleted []uuid.UUID
	Added   []RegisterInput
}

func (e AgendaEdit) isEmpty() bool {
	return len(e.Edited) == 0 && len(e.Deleted) == 0 && len(e.Added) == 0
}

// ApplyAgendaEdit applies all three change sets in a single transaction.
// Any failure rolls the whole edit back: a partially applied agenda is worse
// than a stale one.
func (s *Service) ApplyAgendaEdit(ctx context.Context, meetingID uuid.UUID, edit AgendaEdit) error {
	if edit.isEmpty() {
		return domain.NewValidationError("edit", "no changes to apply")
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, e := range edit.Edited {
			if _, err := s.update(ctx, e.ItemID, e.UpdateInput); err != nil {
				return fmt.Errorf("edit item %s: %w", e.ItemID, err)
			}
		}
		for _, id := range edit.Deleted {
			if err := s.delete(ctx, id); err != nil {
				return fmt.Errorf("delete item %s: %w", id, err)
			}
		}
		for i, in := range edit.Added {
			in.MeetingID = meetingID
			if _, err := s.register(ctx, in); err != nil {
				return fmt.Errorf("add item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.warnOverBudget(ctx, meetingID)

	s.log.InfoContext(ctx, "agenda edit applied",
		slog.String("meeting_id", meetingID.String()),
		slog.Int("edited", len(edit.Edited)),
		slog.Int("deleted", len(edit.Deleted)),
		slog.Int("added", len(edit.Added)),
	)

	return nil
}
