// Package agenda manages agenda items: registration with tier and duration
// classification, person-to-item assignments, ordered retrieval and the
// all-or-nothing bulk edit used by the curation screen.
package agenda

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

type itemRepo interface {
	Create(ctx context.Context, it *domain.Item) (*domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error)
	SortedByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error)
	ByMeetingAndTier(ctx context.Context, meetingID uuid.UUID, tier int) ([]*domain.Item, error)
	TotalDuration(ctx context.Context, meetingID uuid.UUID) (int, error)
	Update(ctx context.Context, id uuid.UUID, params domain.ItemUpdateParams) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type assignmentRepo interface {
	Add(ctx context.Context, kind item.AssignmentKind, a domain.Assignment) error
	ListByItem(ctx context.Context, kind item.AssignmentKind, itemID uuid.UUID) ([]domain.Assignment, error)
	DeleteByItem(ctx context.Context, kind item.AssignmentKind, itemID uuid.UUID) (int64, error)
}

type attendanceRepo interface {
	DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}

type attachmentRepo interface {
	DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error)
}

type meetingRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides agenda item operations.
type Service struct {
	items       itemRepo
	assignments assignmentRepo
	attendance  attendanceRepo
	attachments attachmentRepo
	meetings    meetingRepo
	tx          txManager
	log         *slog.Logger
}

// NewService creates a new agenda service.
func NewService(
	log *slog.Logger,
	items itemRepo,
	assignments assignmentRepo,
	attendance attendanceRepo,
	attachments attachmentRepo,
	meetings meetingRepo,
	tx txManager,
) *Service {
	return &Service{
		items:       items,
		assignments: assignments,
		attendance:  attendance,
		attachments: attachments,
		meetings:    meetings,
		tx:          tx,
		log:         log.With("service", "agenda"),
	}
}
