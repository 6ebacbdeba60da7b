package meeting

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockingjay-project/mockingjay/internal/adapter/postgres/item"
	"github.com/mockingjay-project/mockingjay/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type mockMeetingRepo struct {
	CreateFunc             func(ctx context.Context, m *domain.Meeting) (*domain.Meeting, error)
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*domain.Meeting, error)
	ListUpcomingFunc       func(ctx context.Context) ([]*domain.Meeting, error)
	ListPastFunc           func(ctx context.Context) ([]*domain.Meeting, error)
	ListAllFunc            func(ctx context.Context) ([]*domain.Meeting, error)
	GetNearestUpcomingFunc func(ctx context.Context) (*domain.Meeting, error)
	UpdateFunc             func(ctx context.Context, id uuid.UUID, params domain.MeetingUpdateParams) (int64, error)
	SetStatusFunc          func(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (int64, error)
	DeleteFunc             func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (m *mockMeetingRepo) Create(ctx context.Context, mt *domain.Meeting) (*domain.Meeting, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, mt)
	}
	mt.ID = uuid.New()
	mt.CreatedAt = time.Now()
	return mt, nil
}

func (m *mockMeetingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Meeting, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMeetingRepo) ListUpcoming(ctx context.Context) ([]*domain.Meeting, error) {
	if m.ListUpcomingFunc != nil {
		return m.ListUpcomingFunc(ctx)
	}
	return nil, nil
}

func (m *mockMeetingRepo) ListPast(ctx context.Context) ([]*domain.Meeting, error) {
	if m.ListPastFunc != nil {
		return m.ListPastFunc(ctx)
	}
	return nil, nil
}

func (m *mockMeetingRepo) ListAll(ctx context.Context) ([]*domain.Meeting, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockMeetingRepo) GetNearestUpcoming(ctx context.Context) (*domain.Meeting, error) {
	if m.GetNearestUpcomingFunc != nil {
		return m.GetNearestUpcomingFunc(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *mockMeetingRepo) Update(ctx context.Context, id uuid.UUID, params domain.MeetingUpdateParams) (int64, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return 1, nil
}

func (m *mockMeetingRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.MeetingStatus) (int64, error) {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return 1, nil
}

func (m *mockMeetingRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return 1, nil
}

type mockItemRepo struct {
	ListByMeetingFunc   func(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error)
	DeleteByMeetingFunc func(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

func (m *mockItemRepo) ListByMeeting(ctx context.Context, meetingID uuid.UUID) ([]*domain.Item, error) {
	if m.ListByMeetingFunc != nil {
		return m.ListByMeetingFunc(ctx, meetingID)
	}
	return nil, nil
}

func (m *mockItemRepo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	if m.DeleteByMeetingFunc != nil {
		return m.DeleteByMeetingFunc(ctx, meetingID)
	}
	return 0, nil
}

type mockAssignmentRepo struct {
	DeleteByItemFunc func(ctx context.Context, kind item.AssignmentKind, itemID uuid.UUID) (int64, error)
}

func (m *mockAssignmentRepo) DeleteByItem(ctx context.Context, kind item.AssignmentKind, itemID uuid.UUID) (int64, error) {
	if m.DeleteByItemFunc != nil {
		return m.DeleteByItemFunc(ctx, kind, itemID)
	}
	return 0, nil
}

type mockAttendanceRepo struct {
	DeleteByMeetingFunc func(ctx context.Context, meetingID uuid.UUID) (int64, error)
}

func (m *mockAttendanceRepo) DeleteByMeeting(ctx context.Context, meetingID uuid.UUID) (int64, error) {
	if m.DeleteByMeetingFunc != nil {
		return m.DeleteByMeetingFunc(ctx, meetingID)
	}
	return 0, nil
}

type mockAttachmentRepo struct {
	DeleteByItemFunc func(ctx context.Context, itemID uuid.UUID) (int64, error)
}

func (m *mockAttachmentRepo) DeleteByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	if m.DeleteByItemFunc != nil {
		return m.DeleteByItemFunc(ctx, itemID)
	}
	return 0, nil
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
	meetings    *mockMeetingRepo
	items       *mockItemRepo
	assignments *mockAssignmentRepo
	attendance  *mockAttendanceRepo
	attachments *mockAttachmentRepo
	tx          *mockTxManager
}

func newTestService() (*Service, *testDeps) {
	deps := &testDeps{
		meetings:    &mockMeetingRepo{},
		items:       &mockItemRepo{},
		assignments: &mockAssignmentRepo{},
		attendance:  &mockAttendanceRepo{},
		attachments: &mockAttachmentRepo{},
		tx:          &mockTxManager{},
	}
	svc := NewService(slog.Default(), deps.meetings, deps.items, deps.assignments, deps.attendance, deps.attachments, deps.tx)
	return svc, deps
}

func validInput() CreateInput {
	return CreateInput{
		Title:     "Quarterly Review Board",
		Date:      time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "15:00",
		EndTime:   "17:30",
		Location:  "Conference Room A",
		CreatedBy: "admin",
	}
}

// ===========================================================================
// Create
// ===========================================================================

func TestService_Create_DerivesDurations(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, 150, m.TotalDuration)
	assert.Equal(t, 150, m.MinutesLeft)
	assert.Zero(t, m.MinutesTaken)
	assert.Equal(t, domain.MeetingStatusCuration, m.Status)
}

func TestService_Create_MissingFields(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	in := validInput()
	in.Title = ""
	in.Location = ""

	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)
}

func TestService_Create_EndBeforeStart(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	in := validInput()
	in.StartTime = "17:30"
	in.EndTime = "15:00"

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// Update
// ===========================================================================

func TestService_Update_RecomputesDurationOnTimeChange(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	id := uuid.New()
	stored := &domain.Meeting{
		ID: id, StartTime: "15:00", EndTime: "17:30",
		TotalDuration: 150, MinutesLeft: 130, MinutesTaken: 20,
	}
	deps.meetings.GetByIDFunc = func(_ context.Context, got uuid.UUID) (*domain.Meeting, error) {
		assert.Equal(t, id, got)
		return stored, nil
	}

	var applied domain.MeetingUpdateParams
	deps.meetings.UpdateFunc = func(_ context.Context, _ uuid.UUID, params domain.MeetingUpdateParams) (int64, error) {
		applied = params
		return 1, nil
	}

	end := "18:00"
	_, err := svc.Update(context.Background(), id, domain.MeetingUpdateParams{EndTime: &end})
	require.NoError(t, err)

	require.NotNil(t, applied.TotalDuration)
	require.NotNil(t, applied.MinutesLeft)
	assert.Equal(t, 180, *applied.TotalDuration)
	assert.Equal(t, 160, *applied.MinutesLeft)
}

func TestService_Update_EmptyParams(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService()

	_, err := svc.Update(context.Background(), uuid.New(), domain.MeetingUpdateParams{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Update_NotFound(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.meetings.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Meeting, error) {
		return &domain.Meeting{}, nil
	}
	deps.meetings.UpdateFunc = func(_ context.Context, _ uuid.UUID, _ domain.MeetingUpdateParams) (int64, error) {
		return 0, nil
	}

	title := "renamed"
	_, err := svc.Update(context.Background(), uuid.New(), domain.MeetingUpdateParams{Title: &title})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ===========================================================================
// TakeMinutes
// ===========================================================================

func TestService_TakeMinutes(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.meetings.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Meeting, error) {
		return &domain.Meeting{TotalDuration: 150, MinutesLeft: 150, MinutesTaken: 0}, nil
	}

	m, err := svc.TakeMinutes(context.Background(), uuid.New(), 30)
	require.NoError(t, err)
	assert.Equal(t, 30, m.MinutesTaken)
	assert.Equal(t, 120, m.MinutesLeft)
}

func TestService_TakeMinutes_OverBudget(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.meetings.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Meeting, error) {
		return &domain.Meeting{TotalDuration: 150, MinutesLeft: 10, MinutesTaken: 140}, nil
	}

	_, err := svc.TakeMinutes(context.Background(), uuid.New(), 30)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ===========================================================================
// Advance
// ===========================================================================

func TestService_Advance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current domain.MeetingStatus
		next    domain.MeetingStatus
		wantErr error
	}{
		{"forward step", domain.MeetingStatusCuration, domain.MeetingStatusReviewing, nil},
		{"reject from reviewing", domain.MeetingStatusReviewing, domain.MeetingStatusRejected, nil},
		{"skip a step", domain.MeetingStatusCuration, domain.MeetingStatusApprovedCOS, domain.ErrConflict},
		{"backward", domain.MeetingStatusReviewing, domain.MeetingStatusCuration, domain.ErrConflict},
		{"out of completed", domain.MeetingStatusCompleted, domain.MeetingStatusCirculated, domain.ErrConflict},
		{"reject the rejected", domain.MeetingStatusRejected, domain.MeetingStatusRejected, domain.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, deps := newTestService()

			deps.meetings.GetByIDFunc = func(_ context.Context, _ uuid.UUID) (*domain.Meeting, error) {
				return &domain.Meeting{Status: tt.current}, nil
			}

			m, err := svc.Advance(context.Background(), uuid.New(), tt.next)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.next, m.Status)
		})
	}
}

// ===========================================================================
// Delete
// ===========================================================================

func TestService_Delete_CascadesWithinTx(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	meetingID := uuid.New()
	item1, item2 := uuid.New(), uuid.New()

	inTx := false
	deps.tx.RunInTxFunc = func(ctx context.Context, fn func(context.Context) error) error {
		inTx = true
		defer func() { inTx = false }()
		return fn(ctx)
	}

	deps.items.ListByMeetingFunc = func(_ context.Context, _ uuid.UUID) ([]*domain.Item, error) {
		return []*domain.Item{{ID: item1}, {ID: item2}}, nil
	}

	var attachmentDeletes, ownerDeletes, extraDeletes []uuid.UUID
	deps.attachments.DeleteByItemFunc = func(_ context.Context, itemID uuid.UUID) (int64, error) {
		require.True(t, inTx)
		attachmentDeletes = append(attachmentDeletes, itemID)
		return 1, nil
	}
	deps.assignments.DeleteByItemFunc = func(_ context.Context, kind item.AssignmentKind, itemID uuid.UUID) (int64, error) {
		require.True(t, inTx)
		if kind == item.AssignmentOwner {
			ownerDeletes = append(ownerDeletes, itemID)
		} else {
			extraDeletes = append(extraDeletes, itemID)
		}
		return 1, nil
	}

	attendanceDeleted, itemsDeleted := false, false
	deps.attendance.DeleteByMeetingFunc = func(_ context.Context, _ uuid.UUID) (int64, error) {
		require.True(t, inTx)
		attendanceDeleted = true
		return 4, nil
	}
	deps.items.DeleteByMeetingFunc = func(_ context.Context, _ uuid.UUID) (int64, error) {
		require.True(t, inTx)
		itemsDeleted = true
		return 2, nil
	}

	require.NoError(t, svc.Delete(context.Background(), meetingID))
	assert.ElementsMatch(t, []uuid.UUID{item1, item2}, attachmentDeletes)
	assert.ElementsMatch(t, []uuid.UUID{item1, item2}, ownerDeletes)
	assert.ElementsMatch(t, []uuid.UUID{item1, item2}, extraDeletes)
	assert.True(t, attendanceDeleted)
	assert.True(t, itemsDeleted)
}

func TestService_Delete_NotFound(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	deps.meetings.DeleteFunc = func(_ context.Context, _ uuid.UUID) (int64, error) {
		return 0, nil
	}

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Delete_AbortsOnCascadeFailure(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService()

	boom := errors.New("disk full")
	deps.items.ListByMeetingFunc = func(_ context.Context, _ uuid.UUID) ([]*domain.Item, error) {
		return nil, boom
	}

	meetingDeleted := false
	deps.meetings.DeleteFunc = func(_ context.Context, _ uuid.UUID) (int64, error) {
		meetingDeleted = true
		return 1, nil
	}

	err := svc.Delete(context.Background(), uuid.New())
	require.ErrorIs(t, err, boom)
	assert.False(t, meetingDeleted)
}
