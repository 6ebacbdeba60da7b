// Package meeting implements the meeting lifecycle: creation, partial
// updates with duration recomputation, the status state machine and
// cascading deletion.
package meeting

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

type meetingRepo interface {
	Create(ctx context.Context, m *domain.Meeting) (*domain.Meeting, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	ListUpcoming(ctx context.Context) ([]*domain.Meeting, error)
	ListPast(ctx context.Context) ([]*domain.Meeting, error)
	ListAll(ctx context.Context) ([]*domain.Meeting, error)
	GetNearestUpcoming(ctx context.Context) (*domain.Meeting, error)
	Update(ctx context.Context, id uuid.UUID, params domain.MeetingUpdateParams) (int64, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type itemRepo interface {
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error)
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

type assignmentRepo interface {
	DeleteByItem(ctx context.Context, kind item.AssignmentKind, itemID uuid.UUID) (int64, error)
}

type attendanceRepo interface {
	DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

type attachmentRepo interface {
	DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides meeting lifecycle operations.
type Service struct {
	meetings    meetingRepo
	items       itemRepo
	assignments assignmentRepo
	attendance  attendanceRepo
	attachments attachmentRepo
	tx          txManager
	log         *slog.Logger
}

// NewService creates a new meeting service.
func NewService(
	log *slog.Logger,
	meetings meetingRepo,
	items itemRepo,
	assignments assignmentRepo,
	attendance attendanceRepo,
	attachments attachmentRepo,
	tx txManager,
) *Service {
	return &Service{
		meetings:    meetings,
		items:       items,
		assignments: assignments,
		attendance:  attendance,
		attachments: attachments,
		tx:          tx,
		log:         log.With("service", "meeting"),
	}
}
