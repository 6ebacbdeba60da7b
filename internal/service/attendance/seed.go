package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// Seed rebuilds the expected-attendance set for a meeting from its four
// sources. Existing rows are wiped first so the result reflects the current
// agenda, not the agenda as it stood at the last seeding; wipe and re-insert
// happen in one transaction, so a failure leaves the previous set intact.
//
// Meeting-wide sources contribute one row per (person, item): every core
// member and every secretariat member is expected at every item. Item owners
// and additional attendees contribute only to their own item. Everyone starts
// marked attended with empty remarks.
func (s *Service) Seed(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	var inserted int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		items, err := s.items.ListByMeeting(ctx, meetingID)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}

		core, err := s.registries.List(ctx, domain.RegistryCoreMembers)
		if err != nil {
			return fmt.Errorf("list core members: %w", err)
		}
		secretariat, err := s.registries.List(ctx, domain.RegistrySecretariat)
		if err != nil {
			return fmt.Errorf("list secretariat: %w", err)
		}

		owners, err := s.assignments.ListByMeeting(ctx, item.AssignmentOwner, meetingID)
		if err != nil {
			return fmt.Errorf("list item owners: %w", err)
		}
		extras, err := s.assignments.ListByMeeting(ctx, item.AssignmentAdditionalAttendee, meetingID)
		if err != nil {
			return fmt.Errorf("list additional attendees: %w", err)
		}

		records := make([]domain.AttendanceRecord, 0, len(items)*(len(core)+len(secretariat))+len(owners)+len(extras))
		for _, it := range items {
			for _, m := range core {
				records = append(records, domain.AttendanceRecord{
					PerNum:      m.PerNum,
					Name:        m.Name,
					Designation: m.Designation,
					MeetingID:   meetingID,
					ItemID:      it.ID,
					Attended:    true,
					Role:        domain.AttendanceRole(m.Role),
				})
			}
			for _, m := range secretariat {
				records = append(records, domain.AttendanceRecord{
					PerNum:      m.PerNum,
					Name:        m.Name,
					Designation: m.Designation,
					MeetingID:   meetingID,
					ItemID:      it.ID,
					Attended:    true,
					Role:        domain.AttendanceRoleSecretariat,
				})
			}
		}
		for _, a := range owners {
			records = append(records, assignmentRecord(a, domain.AttendanceRoleItemOwner))
		}
		for _, a := range extras {
			records = append(records, assignmentRecord(a, domain.AttendanceRoleAdditionalAttendee))
		}

		if _, err := s.attendance.DeleteByMeeting(ctx, meetingID); err != nil {
			return fmt.Errorf("reset attendance: %w", err)
		}

		inserted, err = s.attendance.BulkInsert(ctx, records)
		if err != nil {
			return fmt.Errorf("insert attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "attendance seeded",
		slog.String("meeting_id", meetingID.String()),
		slog.Int64("rows", inserted),
	)

	return inserted, nil
}

func assignmentRecord(a domain.Assignment, role domain.AttendanceRole) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		PerNum:      a.PerNum,
		Name:        a.Name,
		Designation: a.Designation,
		MeetingID:   a.MeetingID,
		ItemID:      a.ItemID,
		Attended:    true,
		Role:        role,
	}
}
