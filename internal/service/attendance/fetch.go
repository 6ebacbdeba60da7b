package attendance

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// FetchByMeeting returns the per-person aggregated attendance for a meeting.
// Each person appears once; ItemIDs, Attended and Remarks are positionally
// aligned. With nonSelectOnly set, only rows for items not selected for the
// final agenda are included.
func (s *Service) FetchByMeeting(ctx context.Context, meetingID uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error) {
	rows, err := s.attendance.AggregateByMeeting(ctx, meetingID, nonSelectOnly)
	if err != nil {
		return nil, fmt.Errorf("aggregate attendance for meeting %s: %w", meetingID, err)
	}
	return rows, nil
}

// ListByMeeting returns the raw attendance rows for a meeting, one per
// (person, item, role).
func (s *Service) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]domain.AttendanceRecord, error) {
	return s.attendance.ListByMeeting(ctx, meetingID)
}
