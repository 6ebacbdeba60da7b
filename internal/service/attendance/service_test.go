package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockAttendanceRepo struct {
	BulkInsertFunc         func(ctx context.Context, records []domain.AttendanceRecord) (int64, error)
	ListByMeetingFunc      func(ctx context.Context, meetingID uuid.UUID) ([]domain.AttendanceRecord, error)
	AggregateByMeetingFunc func(ctx context.Context, meetingID uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error)
	UpdateFlagFunc         func(ctx context.Context, meetingID uuid.UUID, edit domain.AttendanceEdit) (int64, error)
	DeleteByMeetingFunc    func(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

func (m *mockAttendanceRepo) BulkInsert(ctx context.Context, records []domain.AttendanceRecord) (int64, error) {
	if m.BulkInsertFunc != nil {
		return m.BulkInsertFunc(ctx, records)
	}
	return int64(len(records)), nil
}

func (m *mockAttendanceRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]domain.AttendanceRecord, error) {
	if m.ListByMeetingFunc != nil {
		return m.ListByMeetingFunc(ctx, meetingID)
	}
	return nil, nil
}

func (m *mockAttendanceRepo) AggregateByMeeting(ctx context.Context, meetingID uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error) {
	if m.AggregateByMeetingFunc != nil {
		return m.AggregateByMeetingFunc(ctx, meetingID, nonSelectOnly)
	}
	return nil, nil
}

func (m *mockAttendanceRepo) UpdateFlag(ctx context.Context, meetingID uuid.UUID, edit domain.AttendanceEdit) (int64, error) {
	if m.UpdateFlagFunc != nil {
		return m.UpdateFlagFunc(ctx, meetingID, edit)
	}
	return 1, nil
}

func (m *mockAttendanceRepo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	if m.DeleteByMeetingFunc != nil {
		return m.DeleteByMeetingFunc(ctx, meetingID)
	}
	return 0, nil
}

type mockItemRepo struct {
	ListByMeetingFunc func(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error)
}

func (m *mockItemRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error) {
	if m.ListByMeetingFunc != nil {
		return m.ListByMeetingFunc(ctx, meetingID)
	}
	return nil, nil
}

type mockAssignmentRepo struct {
	ListByMeetingFunc func(ctx context.Context, kind item.AssignmentKind, meetingID uuid.UUID) ([]domain.Assignment, error)
}

func (m *mockAssignmentRepo) ListByMeeting(ctx context.Context, kind item.AssignmentKind, meetingID uuid.UUID) ([]domain.Assignment, error) {
	if m.ListByMeetingFunc != nil {
		return m.ListByMeetingFunc(ctx, kind, meetingID)
	}
	return nil, nil
}

type mockMembershipRepo struct {
	ListFunc func(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error)
}

func (m *mockMembershipRepo) List(ctx context.Context, registry domain.Registry) ([]domain.MembershipRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, registry)
	}
	return nil, nil
}

type mockTxManager struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

type testDeps struct {
	attendance  *mockAttendanceRepo
	items       *mockItemRepo
	assignments *mockAssignmentRepo
	registries  *mockMembershipRepo
	tx          *mockTxManager
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		attendance:  &mockAttendanceRepo{},
		items:       &mockItemRepo{},
		assignments: &mockAssignmentRepo{},
		registries:  &mockMembershipRepo{},
		tx:          &mockTxManager{},
	}
	svc := NewService(slog.Default(), deps.attendance, deps.items, deps.assignments, deps.registries, deps.tx)
	return svc, deps
}

func members(registry domain.Registry, n int) []domain.MembershipRecord {
	out := make([]domain.MembershipRecord, n)
	for i := range out {
		role := "Permanent"
		if registry == domain.RegistrySecretariat {
			role = "Secretariat"
		}
		out[i] = domain.MembershipRecord{
			PerNum: 1000*len(registry) + i,
			Name:   fmt.Sprintf("%s member %d", registry, i),
			Role:   role,
		}
	}
	return out
}

func makeItems(meetingID uuid.UUID, n int) []*domain.Item {
	out := make([]*domain.Item, n)
	for i := range out {
		out[i] = &domain.Item{ID: uuid.New(), MeetingID: meetingID}
	}
	return out
}

// ===========================================================================
// Seed
// ===========================================================================

func TestService_Seed_MeetingWideRowCount(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	meetingID := uuid.New()
	const nItems, nCore, nSecretariat = 3, 23, 5

	deps.items.ListByMeetingFunc = func(_ context.Context, _ uuid.UUID) ([]*domain.Item, error) {
		return makeItems(meetingID, nItems), nil
	}
	deps.registries.ListFunc = func(_ context.Context, registry domain.Registry) ([]domain.MembershipRecord, error) {
		if registry == domain.RegistryCoreMembers {
			return members(registry, nCore), nil
		}
		return members(registry, nSecretariat), nil
	}

	inserted, err := svc.Seed(context.Background(), meetingID)
	require.NoError(t, err)
	assert.Equal(t, int64(nItems*(nCore+nSecretariat)), inserted)
}

func TestService_Seed_FourSources(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	// 2 items, 2 core members, 1 secretariat, 1 owner on item 1,
	// 1 additional attendee on item 2: 2x(2+1) + 1 + 1 = 8 rows.
	meetingID := uuid.New()
	items := makeItems(meetingID, 2)
	item1, item2 := items[0].ID, items[1].ID

	deps.items.ListByMeetingFunc = func(_ context.Context, _ uuid.UUID) ([]*domain.Item, error) {
		return items, nil
	}
	deps.registries.ListFunc = func(_ context.Context, registry domain.Registry) ([]domain.MembershipRecord, error) {
		if registry == domain.RegistryCoreMembers {
			return []domain.MembershipRecord{
				{PerNum: 1, Name: "HOD", Role: "HOD"},
				{PerNum: 2, Name: "Core", Role: "Permanent"},
			}, nil
		}
		return []domain.MembershipRecord{{PerNum: 3, Name: "Sec", Role: "Secretariat"}}, nil
	}
	deps.assignments.ListByMeetingFunc = func(_ context.Context, kind item.AssignmentKind, _ uuid.UUID) ([]domain.Assignment, error) {
		if kind == item.AssignmentOwner {
			return []domain.Assignment{{PerNum: 4, Name: "Owner", MeetingID: meetingID, ItemID: item1}}, nil
		}
		return []domain.Assignment{{PerNum: 5, Name: "Extra", MeetingID: meetingID, ItemID: item2}}, nil
	}

	var seeded []domain.AttendanceRecord
	deps.attendance.BulkInsertFunc = func(_ context.Context, records []domain.AttendanceRecord) (int64, error) {
		seeded = records
		return int64(len(records)), nil
	}

	inserted, err := svc.Seed(context.Background(), meetingID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), inserted)

	perItem := map[uuid.UUID]int{}
	roles := map[domain.AttendanceRole]int{}
	for _, r := range seeded {
		perItem[r.ItemID]++
		roles[r.Role]++
		assert.True(t, r.Attended)
		assert.Empty(t, r.Remarks)
	}
	assert.Equal(t, 4, perItem[item1]) // HOD, Permanent, Secretariat, ItemOwner
	assert.Equal(t, 4, perItem[item2]) // HOD, Permanent, Secretariat, AdditionalAttendee
	assert.Equal(t, 2, roles[domain.AttendanceRoleHOD])
	assert.Equal(t, 2, roles[domain.AttendanceRolePermanent])
	assert.Equal(t, 2, roles[domain.AttendanceRoleSecretariat])
	assert.Equal(t, 1, roles[domain.AttendanceRoleItemOwner])
	assert.Equal(t, 1, roles[domain.AttendanceRoleAdditionalAttendee])
}

func TestService_Seed_ResetsBeforeInsert(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	order := []string{}
	deps.attendance.DeleteByMeetingFunc = func(_ context.Context, _ uuid.UUID) (int64, error) {
		order = append(order, "delete")
		return 10, nil
	}
	deps.attendance.BulkInsertFunc = func(_ context.Context, records []domain.AttendanceRecord) (int64, error) {
		order = append(order, "insert")
		return int64(len(records)), nil
	}

	_, err := svc.Seed(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"delete", "insert"}, order)
}

func TestService_Seed_InsertFailureKeepsPreviousSet(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	boom := errors.New("write failed")
	deps.attendance.BulkInsertFunc = func(_ context.Context, _ []domain.AttendanceRecord) (int64, error) {
		return 0, boom
	}

	rolledBack := false
	deps.tx.RunInTxFunc = func(ctx context.Context, fn func(context.Context) error) error {
		err := fn(ctx)
		if err != nil {
			rolledBack = true
		}
		return err
	}

	_, err := svc.Seed(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)
	assert.True(t, rolledBack)
}

// ===========================================================================
// FetchByMeeting
// ===========================================================================

func TestService_FetchByMeeting_ParallelSlicesAligned(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	item1, item2 := uuid.New(), uuid.New()
	deps.attendance.AggregateByMeetingFunc = func(_ context.Context, _ uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error) {
		assert.False(t, nonSelectOnly)
		return []domain.PersonAttendance{{
			PerNum:   1,
			ItemIDs:  []uuid.UUID{item1, item2},
			Attended: []bool{true, false},
			Remarks:  []string{"", "on leave"},
		}}, nil
	}

	rows, err := svc.FetchByMeeting(context.Background(), uuid.New(), false)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Len(t, row.Attended, len(row.ItemIDs))
	assert.Len(t, row.Remarks, len(row.ItemIDs))
}

func TestService_FetchByMeeting_NonSelectFilterForwarded(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	var captured bool
	deps.attendance.AggregateByMeetingFunc = func(_ context.Context, _ uuid.UUID, nonSelectOnly bool) ([]domain.PersonAttendance, error) {
		captured = nonSelectOnly
		return nil, nil
	}

	_, err := svc.FetchByMeeting(context.Background(), uuid.New(), true)
	require.NoError(t, err)
	assert.True(t, captured)
}

// ===========================================================================
// Update
// ===========================================================================

func TestService_Update_EmptyEditSet(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	err := svc.Update(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Update_UnknownPairRollsBackBatch(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	applied := 0
	deps.attendance.UpdateFlagFunc = func(_ context.Context, _ uuid.UUID, edit domain.AttendanceEdit) (int64, error) {
		if edit.PerNum == 99 {
			return 0, nil
		}
		applied++
		return 1, nil
	}

	rolledBack := false
	deps.tx.RunInTxFunc = func(ctx context.Context, fn func(context.Context) error) error {
		err := fn(ctx)
		if err != nil {
			rolledBack = true
		}
		return err
	}

	edits := []domain.AttendanceEdit{
		{PerNum: 1, ItemID: uuid.New(), Attended: false},
		{PerNum: 99, ItemID: uuid.New(), Attended: true},
	}
	err := svc.Update(context.Background(), uuid.New(), edits)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, rolledBack)
	assert.Equal(t, 1, applied)
}

func TestService_Update_OK(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	var got domain.AttendanceEdit
	deps.attendance.UpdateFlagFunc = func(_ context.Context, _ uuid.UUID, edit domain.AttendanceEdit) (int64, error) {
		got = edit
		return 1, nil
	}

	itemID := uuid.New()
	err := svc.Update(context.Background(), uuid.New(), []domain.AttendanceEdit{
		{PerNum: 7, ItemID: itemID, Attended: false, Remarks: "travelling"},
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got.PerNum)
	assert.Equal(t, itemID, got.ItemID)
	assert.False(t, got.Attended)
	assert.Equal(t, "travelling", got.Remarks)
}
