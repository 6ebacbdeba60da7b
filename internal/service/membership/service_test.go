package membership

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockMembershipRepo struct {
	ListFunc   func(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error)
	UpsertFunc func(ctx context.Context, registry domain.Registry, rec domain.MembershipRecord) error
	RemoveFunc func(ctx context.Context, registry domain.Registry, perNum int) (int64, error)
	CountFunc  func(ctx context.Context, registry domain.Registry) (int, error)
}

func (m *mockMembershipRepo) List(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, registry)
	}
	return nil, nil
}

func (m *mockMembershipRepo) Upsert(ctx context.Context, registry domain.Registry, rec domain.MembershipRecord) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, registry, rec)
	}
	return nil
}

func (m *mockMembershipRepo) Remove(ctx context.Context, registry domain.Registry, perNum int) (int64, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, registry, perNum)
	}
	return 1, nil
}

func (m *mockMembershipRepo) Count(ctx context.Context, registry domain.Registry) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, registry)
	}
	return 0, nil
}

type mockDirectoryRepo struct {
	GetByPerNumFunc   func(ctx context.Context, perNum int) (*domain.Person, error)
	ListByPerNumsFunc func(ctx context.Context, perNums []int) ([]domain.Person, error)
}

func (m *mockDirectoryRepo) GetByPerNum(ctx context.Context, perNum int) (*domain.Person, error) {
	if m.GetByPerNumFunc != nil {
		return m.GetByPerNumFunc(ctx, perNum)
	}
	return nil, domain.ErrNotFound
}

func (m *mockDirectoryRepo) ListByPerNums(ctx context.Context, perNums []int) ([]domain.Person, error) {
	if m.ListByPerNumsFunc != nil {
		return m.ListByPerNumsFunc(ctx, perNums)
	}
	return nil, nil
}

type testDeps struct {
	registries *mockMembershipRepo
	directory  *mockDirectoryRepo
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		registries: &mockMembershipRepo{},
		directory:  &mockDirectoryRepo{},
	}
	svc := NewService(slog.Default(), deps.registries, deps.directory)
	return svc, deps
}

// ===========================================================================
// AddOrUpdate
// ===========================================================================

func TestService_AddOrUpdate_CopiesDirectoryIdentity(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.directory.GetByPerNumFunc = func(_ context.Context, perNum int) (*domain.Person, error) {
		assert.Equal(t, 4021, perNum)
		return &domain.Person{PerNum: 4021, Name: "Priya Nair", Designation: "Manager", EmploymentRole: domain.EmploymentRolePermanent}, nil
	}

	var upserted domain.MembershipRecord
	deps.registries.UpsertFunc = func(_ context.Context, registry domain.Registry, rec domain.MembershipRecord) error {
		assert.Equal(t, domain.RegistryCoreMembers, registry)
		upserted = rec
		return nil
	}

	rec, err := svc.AddOrUpdate(context.Background(), domain.RegistryCoreMembers, 4021, "")
	require.NoError(t, err)
	assert.Equal(t, "Priya Nair", rec.Name)
	assert.Equal(t, "Permanent", rec.Role)
	assert.Equal(t, upserted, *rec)
}

func TestService_AddOrUpdate_ExplicitRoleWins(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.directory.GetByPerNumFunc = func(_ context.Context, _ int) (*domain.Person, error) {
		return &domain.Person{PerNum: 4021, Name: "Priya Nair", EmploymentRole: domain.EmploymentRolePermanent}, nil
	}

	rec, err := svc.AddOrUpdate(context.Background(), domain.RegistrySecretariat, 4021, "Secretariat")
	require.NoError(t, err)
	assert.Equal(t, "Secretariat", rec.Role)
}

func TestService_AddOrUpdate_UnknownPerson(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.AddOrUpdate(context.Background(), domain.RegistryCoreMembers, 9999, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_AddOrUpdate_BadRegistry(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.AddOrUpdate(context.Background(), domain.Registry("BOARD"), 4021, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// Remove
// ===========================================================================

func TestService_Remove_NotFound(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.registries.RemoveFunc = func(_ context.Context, _ domain.Registry, _ int) (int64, error) {
		return 0, nil
	}

	err := svc.Remove(context.Background(), domain.RegistryCoreMembers, 123)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Remove_StorageErrorIsNotNotFound(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	boom := errors.New("connection reset")
	deps.registries.RemoveFunc = func(_ context.Context, _ domain.Registry, _ int) (int64, error) {
		return 0, boom
	}

	err := svc.Remove(context.Background(), domain.RegistryCoreMembers, 123)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Remove_OK(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	err := svc.Remove(context.Background(), domain.RegistrySecretariat, 123)
	require.NoError(t, err)
}

// ===========================================================================
// Initialize
// ===========================================================================

func TestService_Initialize_SeedsEmptyRegistry(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.directory.ListByPerNumsFunc = func(_ context.Context, perNums []int) ([]domain.Person, error) {
		assert.Equal(t, []int{1, 2, 3}, perNums)
		return []domain.Person{
			{PerNum: 1, Name: "A", EmploymentRole: domain.EmploymentRoleHOD},
			{PerNum: 2, Name: "B", EmploymentRole: domain.EmploymentRolePermanent},
			{PerNum: 3, Name: "C", EmploymentRole: domain.EmploymentRolePermanent},
		}, nil
	}

	var roles []string
	deps.registries.UpsertFunc = func(_ context.Context, _ domain.Registry, rec domain.MembershipRecord) error {
		roles = append(roles, rec.Role)
		return nil
	}

	n, err := svc.Initialize(context.Background(), domain.RegistryCoreMembers, []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"HOD", "Permanent", "Permanent"}, roles)
}

func TestService_Initialize_SkipsPopulatedRegistry(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.registries.CountFunc = func(_ context.Context, _ domain.Registry) (int, error) {
		return 23, nil
	}
	deps.registries.UpsertFunc = func(_ context.Context, _ domain.Registry, _ domain.MembershipRecord) error {
		t.Fatal("must not upsert into a populated registry")
		return nil
	}

	n, err := svc.Initialize(context.Background(), domain.RegistryCoreMembers, []int{1, 2})
	require.NoError(t, err)
	assert.Zero(t, n)
}
