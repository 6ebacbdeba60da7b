package agenda

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Register creates an agenda item together with its owner and
// additional-attendee assignments in one transaction.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.Item, error) {
	var created *domain.Item
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.register(ctx, in)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.warnOverBudget(ctx, in.MeetingID)

	s.log.InfoContext(ctx, "item registered",
		slog.String("item_id", created.ID.String()),
		slog.String("meeting_id", in.MeetingID.String()),
		slog.String("purpose", in.Purpose.String()),
	)

	return created, nil
}

// register does the work of Register against the querier already bound to ctx.
// The bulk edit path calls it under its own transaction.
func (s *Service) register(ctx context.Context, in RegisterInput) (*domain.Item, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	it := &domain.Item{
		MeetingID:           in.MeetingID,
		Title:               in.Title,
		Description:         in.Description,
		Purpose:             in.Purpose,
		Tier:                in.Purpose.Tier(),
		Select:              in.Select,
		Duration:            domain.NormalizeDuration(in.Purpose, in.Duration),
		ItemOwner:           in.Owner.Name,
		AdditionalAttendees: joinNames(in.AdditionalAttendees),
		Status:              domain.ItemStatusPending,
		CreatedBy:           in.CreatedBy,
	}

	created, err := s.items.Create(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	owner := domain.Assignment{
		PerNum:      in.Owner.PerNum,
		Name:        in.Owner.Name,
		Designation: in.Owner.Designation,
		MeetingID:   in.MeetingID,
		ItemID:      created.ID,
	}
	if err := s.assignments.Add(ctx, item.AssignmentOwner, owner); err != nil {
		return nil, fmt.Errorf("add owner assignment: %w", err)
	}

	for _, ref := range in.AdditionalAttendees {
		a := domain.Assignment{
			PerNum:      ref.PerNum,
			Name:        ref.Name,
			Designation: ref.Designation,
			MeetingID:   in.MeetingID,
			ItemID:      created.ID,
		}
		if err := s.assignments.Add(ctx, item.AssignmentAdditionalAttendee, a); err != nil {
			return nil, fmt.Errorf("add additional attendee %d: %w", ref.PerNum, err)
		}
	}

	return created, nil
}

// warnOverBudget logs when the meeting's items together request more minutes
// than the meeting has. The budget is advisory; registration never fails on it.
func (s *Service) warnOverBudget(ctx context.Context, meetingID uuid.UUID) {
	total, err := s.items.TotalDuration(ctx, meetingID)
	if err != nil {
		s.log.WarnContext(ctx, "failed to check agenda duration",
			slog.String("meeting_id", meetingID.String()), slog.Any("error", err))
		return
	}

	m, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		s.log.WarnContext(ctx, "failed to load meeting for duration check",
			slog.String("meeting_id", meetingID.String()), slog.Any("error", err))
		return
	}

	if total > m.TotalDuration {
		s.log.WarnContext(ctx, "agenda exceeds meeting duration",
			slog.String("meeting_id", meetingID.String()),
			slog.Int("agenda_minutes", total),
			slog.Int("meeting_minutes", m.TotalDuration),
		)
	}
}
