package agenda

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Update applies a partial update to an agenda item inside one transaction.
// Purpose changes re-derive the tier and re-apply the duration rules;
// owner or additional-attendee changes replace the matching assignment rows.
func (s *Service) Update(ctx context.Context, itemID uuid.UUID, in UpdateInput) (*domain.Item, error) {
	var updated *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.update(ctx, itemID, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.warnOverBudget(ctx, updated.MeetingID)

	s.log.InfoContext(ctx, "item updated", slog.String("item_id", itemID.String()))
	return updated, nil
}

func (s *Service) update(ctx context.Context, itemID uuid.UUID, in UpdateInput) (*domain.Item, error) {
	if in.isEmpty() {
		return nil, domain.NewValidationError("update", "no fields to update")
	}

	current, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", itemID, err)
	}

	params, err := s.buildParams(current, in)
	if err != nil {
		return nil, err
	}

	if !params.IsEmpty() {
		affected, err := s.items.Update(ctx, itemID, params)
		if err != nil {
			return nil, fmt.Errorf("update item: %w", err)
		}
		if affected == 0 {
			return nil, fmt.Errorf("item %s: %w", itemID, domain.ErrNotFound)
		}
	}

	if in.Owner != nil {
		if err := s.replaceAssignments(ctx, item.AssignmentOwner, current.MeetingID, itemID, []PersonRef{*in.Owner}); err != nil {
			return nil, err
		}
	}
	if in.AdditionalAttendees != nil {
		if err := s.replaceAssignments(ctx, item.AssignmentAdditionalAttendee, current.MeetingID, itemID, *in.AdditionalAttendees); err != nil {
			return nil, err
		}
	}

	reloaded, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("reload item: %w", err)
	}
	return reloaded, nil
}

// buildParams turns an UpdateInput into repository params, applying the
// classification rules against the item's effective purpose.
func (s *Service) buildParams(current *domain.Item, in UpdateInput) (domain.ItemUpdateParams, error) {
	params := domain.ItemUpdateParams{
		Title:       in.Title,
		Description: in.Description,
		Select:      in.Select,
		Status:      in.Status,
		ItemOrder:   in.ItemOrder,
	}

	purpose := current.Purpose
	if in.Purpose != nil {
		if !in.Purpose.IsValid() {
			return params, domain.NewValidationError("purpose", "unknown purpose")
		}
		purpose = *in.Purpose
		tier := purpose.Tier()
		params.Purpose = in.Purpose
		params.Tier = &tier
	}

	duration := current.Duration
	if in.Duration != nil {
		duration = *in.Duration
	}
	if in.Duration != nil || in.Purpose != nil {
		if purpose.Tier() == 1 && (duration < 0 || duration > domain.MaxTier1Duration) {
			return params, domain.NewValidationError("duration", "must be between 0 and 30 minutes")
		}
		normalized := domain.NormalizeDuration(purpose, duration)
		params.Duration = &normalized
	}

	if in.Status != nil && !in.Status.IsValid() {
		return params, domain.NewValidationError("status", "unknown status")
	}

	if in.Owner != nil {
		params.ItemOwner = &in.Owner.Name
	}
	if in.AdditionalAttendees != nil {
		joined := joinNames(*in.AdditionalAttendees)
		params.AdditionalAttendees = &joined
	}

	return params, nil
}

func (s *Service) replaceAssignments(ctx context.Context, kind item.AssignmentKind, meetingID, itemID uuid.UUID, refs []PersonRef) error {
	if _, err := s.assignments.DeleteByItem(ctx, kind, itemID); err != nil {
		return fmt.Errorf("clear %s assignments: %w", kind, err)
	}
	for _, ref := range refs {
		a := domain.Assignment{
			PerNum:      ref.PerNum,
			Name:        ref.Name,
			Designation: ref.Designation,
			MeetingID:   meetingID,
			ItemID:      itemID,
		}
		if err := s.assignments.Add(ctx, kind, a); err != nil {
			return fmt.Errorf("add %s assignment for %d: %w", kind, ref.PerNum, err)
		}
	}
	return nil
}
