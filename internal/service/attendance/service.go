// Package attendance implements the attendee roll-up: seeding expected
// attendance from the four sources (core members, secretariat, item owners,
// additional attendees), the per-person aggregated view, and attendance
// marking.
package attendance

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

type attendanceRepo interface {
	BulkInsert(ctx context.Context, records []domain.AttendanceRecord) (int64, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]domain.AttendanceRecord, error)
	AggregateByMeeting(ctx context.Context, meetingID uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error)
	UpdateFlag(ctx context.Context, meetingID uuid.UUID, edit domain.AttendanceEdit) (int64, error)
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

type itemRepo interface {
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error)
}

type assignmentRepo interface {
	ListByMeeting(ctx context.Context, kind item.AssignmentKind, meetingID uuid.UUID) ([]domain.Assignment, error)
}

type membershipRepo interface {
	List(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides attendance roll-up operations.
type Service struct {
	attendance  attendanceRepo
	items       itemRepo
	assignments assignmentRepo
	registries  membershipRepo
	tx          txManager
	log         *slog.Logger
}

// NewService creates a new attendance service.
func NewService(
	log *slog.Logger,
	attendance attendanceRepo,
	items itemRepo,
	assignments assignmentRepo,
	registries membershipRepo,
	tx txManager,
) *Service {
	return &Service{
		attendance:  attendance,
		items:       items,
		assignments: assignments,
		registries:  registries,
		tx:          tx,
		log:         log.With("service", "attendance"),
	}
}
