// Package membership manages the two standing registries: core members and
// secretariat. Registry rows are snapshots of the personnel directory taken
// at insertion time.
package membership

import (
	"context"
	"log/slog"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

type membershipRepo interface {
	List(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error)
	Upsert(ctx context.Context, registry domain.Registry, rec domain.MembershipRecord) error
	Remove(ctx context.Context, registry domain.Registry, perNum int) (int64, error)
	Count(ctx context.Context, registry domain.Registry) (int, error)
}

type directoryRepo interface {
	GetByPerNum(ctx context.Context, perNum int) (*domain.Person, error)
	ListByPerNums(ctx context.Context, perNums []int) ([]domain.Person, error)
}

// Service provides registry management operations.
type Service struct {
	registries membershipRepo
	directory  directoryRepo
	log        *slog.Logger
}

// NewService creates a new membership service.
func NewService(log *slog.Logger, registries membershipRepo, directory directoryRepo) *Service {
	return &Service{
		registries: registries,
		directory:  directory,
		log:        log.With("service", "membership"),
	}
}
