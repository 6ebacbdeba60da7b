package directory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/directory"
	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/testhelper"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

func newRepo(t *testing.T) (*directory.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return directory.New(pool), pool
}

func TestRepo_GetByPerNum(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	p := testhelper.SeedPerson(t, pool, domain.EmploymentRoleHOD)

	got, err := repo.GetByPerNum(ctx, p.PerNum)
	if err != nil {
		t.Fatalf("GetByPerNum: unexpected error: %v", err)
	}
	if got.Name != p.Name {
		t.Errorf("Name mismatch: got %q, want %q", got.Name, p.Name)
	}
	if got.EmploymentRole != domain.EmploymentRoleHOD {
		t.Errorf("EmploymentRole = %q, want HOD", got.EmploymentRole)
	}
}

func TestRepo_GetByPerNum_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByPerNum(context.Background(), -1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ListByPerNums(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	p1 := testhelper.SeedPerson(t, pool, domain.EmploymentRolePermanent)
	p2 := testhelper.SeedPerson(t, pool, domain.EmploymentRoleNone)

	got, err := repo.ListByPerNums(ctx, []int{p1.PerNum, p2.PerNum, -1})
	if err != nil {
		t.Fatalf("ListByPerNums: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (unknown ids are skipped, not errors)", len(got))
	}
}

func TestRepo_InsertSeed_Idempotent(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	p := testhelper.SeedPersonValue()

	inserted, err := repo.InsertSeed(ctx, []domain.Person{p})
	if err != nil {
		t.Fatalf("InsertSeed: unexpected error: %v", err)
	}
	if inserted != 1 {
		t.Fatalf("inserted = %d, want 1", inserted)
	}

	inserted, err = repo.InsertSeed(ctx, []domain.Person{p})
	if err != nil {
		t.Fatalf("InsertSeed (repeat): unexpected error: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("repeat inserted = %d, want 0 (existing rows are skipped)", inserted)
	}
}
