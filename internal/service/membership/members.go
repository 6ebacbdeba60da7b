package membership

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// List returns all records of a registry ordered by person number.
func (s *Service) List(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error) {
	if !registry.IsValid() {
		return nil, domain.NewValidationError("registry", "unknown registry")
	}

	return s.registries.List(ctx, registry)
}

// AddOrUpdate copies a directory person into the registry, replacing any
// existing record for that person number. When role is empty the directory's
// employment classification is used; a previously customized role is
// overwritten either way (the registry mirrors the last add).
func (s *Service) AddOrUpdate(ctx context.Context, registry domain.Registry, perNum int, role string) (*domain.MembershipRecord, error) {
	if !registry.IsValid() {
		return nil, domain.NewValidationError("registry", "unknown registry")
	}

	person, err := s.directory.GetByPerNum(ctx, perNum)
	if err != nil {
		return nil, fmt.Errorf("lookup person %d: %w", perNum, err)
	}

	if role == "" {
		role = string(person.EmploymentRole)
	}

	rec := domain.MembershipRecord{
		PerNum:      person.PerNum,
		Name:        person.Name,
		Designation: person.Designation,
		Role:        role,
	}

	if err := s.registries.Upsert(ctx, registry, rec); err != nil {
		return nil, fmt.Errorf("upsert member: %w", err)
	}

	s.log.InfoContext(ctx, "member added",
		slog.String("registry", registry.String()),
		slog.Int("per_num", perNum),
	)

	return &rec, nil
}

// Remove deletes a registry record by person number.
// Returns domain.ErrNotFound when the person was not in the registry;
// a storage failure surfaces as its own error, never as a silent false.
func (s *Service) Remove(ctx context.Context, registry domain.Registry, perNum int) error {
	if !registry.IsValid() {
		return domain.NewValidationError("registry", "unknown registry")
	}

	removed, err := s.registries.Remove(ctx, registry, perNum)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if removed == 0 {
		return fmt.Errorf("member %d in %s: %w", perNum, registry, domain.ErrNotFound)
	}

	s.log.InfoContext(ctx, "member removed",
		slog.String("registry", registry.String()),
		slog.Int("per_num", perNum),
	)

	return nil
}

// Initialize copies the directory rows matching perNums into an empty
// registry. A registry that already has rows is left untouched: the seed is
// idempotent at the registry level, not at the row level.
func (s *Service) Initialize(ctx context.Context, registry domain.Registry, perNums []int) (int, error) {
	if !registry.IsValid() {
		return 0, domain.NewValidationError("registry", "unknown registry")
	}

	count, err := s.registries.Count(ctx, registry)
	if err != nil {
		return 0, fmt.Errorf("count registry: %w", err)
	}
	if count > 0 {
		s.log.InfoContext(ctx, "registry already initialized",
			slog.String("registry", registry.String()),
			slog.Int("rows", count),
		)
		return 0, nil
	}

	persons, err := s.directory.ListByPerNums(ctx, perNums)
	if err != nil {
		return 0, fmt.Errorf("list directory: %w", err)
	}

	inserted := 0
	for _, p := range persons {
		rec := domain.MembershipRecord{
			PerNum:      p.PerNum,
			Name:        p.Name,
			Designation: p.Designation,
			Role:        string(p.EmploymentRole),
		}
		if err := s.registries.Upsert(ctx, registry, rec); err != nil {
			return inserted, fmt.Errorf("seed member %d: %w", p.PerNum, err)
		}
		inserted++
	}

	s.log.InfoContext(ctx, "registry initialized",
		slog.String("registry", registry.String()),
		slog.Int("members", inserted),
	)

	return inserted, nil
}
