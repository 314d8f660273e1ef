package book_meeting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	intentStore "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/intent"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
	"github.com/m04kA/SMC-MeetingBooking/pkg/metrics"
	"github.com/m04kA/SMC-MeetingBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

const organizerID int64 = 9

type mockClient struct {
	mock.Mock
}

func (m *mockClient) InitMeeting(ctx context.Context, req *meetingapi.InitMeetingRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClient) CreateMeetingRoom(ctx context.Context, req *meetingapi.CreateMeetingRoomRequest, key string) (*meetingapi.MeetingRoom, error) {
	args := m.Called(ctx, req, key)
	room, _ := args.Get(0).(*meetingapi.MeetingRoom)
	return room, args.Error(1)
}

func (m *mockClient) AssignPhysicalRoom(ctx context.Context, req *meetingapi.AssignPhysicalRoomRequest, key string) error {
	args := m.Called(ctx, req, key)
	return args.Error(0)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type fixture struct {
	uc      *UseCase
	client  *mockClient
	store   *intentStore.Store
	orphans *orphanRepo.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	orphans := orphanRepo.NewRepository(db, psqlbuilder.DriverSQLite)
	require.NoError(t, orphans.Migrate(context.Background()))

	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	require.NoError(t, err)

	client := &mockClient{}
	store := intentStore.NewStore(16, time.Hour)
	uc := NewUseCase(
		client,
		store,
		orphans,
		metrics.NewWithRegistry(prometheus.NewRegistry(), "test"),
		RetryPolicy{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond},
		loc,
		logger.Nop(),
	)
	uc.timeProvider = &fixedTime{now: time.Date(2025, 11, 1, 8, 0, 0, 0, loc)}

	return &fixture{uc: uc, client: client, store: store, orphans: orphans}
}

func (f *fixture) start(t *testing.T, roomType string, physicalID *int64) string {
	t.Helper()
	resp, err := f.uc.Start(context.Background(), &StartRequest{
		OrganizerID: organizerID,
		Title:       "Sprint review",
		Start:       "2025-11-04T15:00:00",
		End:         "2025-11-04T16:00:00",
		Capacity:    10,
		RoomType:    roomType,
		PhysicalID:  physicalID,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StateDraft, resp.Intent.State)
	require.Equal(t, domain.StepCreateMeeting, resp.NextStep)
	return resp.Intent.ID
}

func step(intentID string) *StepRequest {
	return &StepRequest{IntentID: intentID, OrganizerID: organizerID}
}

func (f *fixture) listOrphans(t *testing.T) []*domain.OrphanResource {
	t.Helper()
	list, err := f.orphans.List(context.Background(), orphanRepo.ListFilter{})
	require.NoError(t, err)
	return list
}

func TestStart_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		req     StartRequest
		wantErr error
	}{
		{"no title", StartRequest{OrganizerID: 1, Start: "2025-11-04T15:00", End: "2025-11-04T16:00"}, ErrInvalidInput},
		{"no organizer", StartRequest{Title: "x", Start: "2025-11-04T15:00", End: "2025-11-04T16:00"}, ErrInvalidInput},
		{"reversed window", StartRequest{OrganizerID: 1, Title: "x", Start: "2025-11-04T16:00", End: "2025-11-04T15:00"}, ErrInvalidTimeRange},
		{"bad type", StartRequest{OrganizerID: 1, Title: "x", Start: "2025-11-04T15:00", End: "2025-11-04T16:00", RoomType: "HYBRID"}, ErrInvalidInput},
		{"physical id for online", StartRequest{OrganizerID: 1, Title: "x", Start: "2025-11-04T15:00", End: "2025-11-04T16:00", RoomType: "ONLINE", PhysicalID: ptr.Ptr(int64(3))}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Start(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, f.store.Len())
}

func TestRun_PhysicalHappyPath(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", ptr.Ptr(int64(5)))

	f.client.On("InitMeeting", mock.Anything, mock.MatchedBy(func(req *meetingapi.InitMeetingRequest) bool {
		return req.OrganizerID == organizerID && req.StartTime.String() == "2025-11-04T15:00:00"
	})).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, &meetingapi.CreateMeetingRoomRequest{
		MeetingID: 42, Type: "PHYSICAL", Name: "Sprint review",
	}, mock.AnythingOfType("string")).Return(&meetingapi.MeetingRoom{ID: 7}, nil).Once()
	f.client.On("AssignPhysicalRoom", mock.Anything, &meetingapi.AssignPhysicalRoomRequest{
		RoomID: 7, PhysicalID: 5,
	}, mock.AnythingOfType("string")).Return(nil).Once()

	resp, err := f.uc.Run(context.Background(), step(intentID))
	require.NoError(t, err)

	assert.Equal(t, domain.StateRoomAssigned, resp.Intent.State)
	assert.Equal(t, domain.StepNone, resp.NextStep)
	assert.Equal(t, int64(42), ptr.Value(resp.Intent.MeetingID))
	assert.Equal(t, int64(7), ptr.Value(resp.Intent.RoomID))
	assert.Empty(t, f.listOrphans(t))
	f.client.AssertExpectations(t)
}

func TestRun_OnlineSkipsAssignment(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "ONLINE", nil)

	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(&meetingapi.MeetingRoom{RoomID: 8}, nil).Once()

	resp, err := f.uc.Run(context.Background(), step(intentID))
	require.NoError(t, err)

	assert.Equal(t, domain.StateRoomAssigned, resp.Intent.State)
	assert.Equal(t, int64(8), ptr.Value(resp.Intent.RoomID))
	f.client.AssertNotCalled(t, "AssignPhysicalRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_RoomCreationFailureLeavesMeetingOrphaned(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", ptr.Ptr(int64(5)))

	var keys []string
	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(2)) }).
		Return(nil, fmt.Errorf("%w: connection reset", meetingapi.ErrUnavailable)).Times(3)

	resp, err := f.uc.Run(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrStepFailed)

	// Состояние остается MEETING_CREATED, следующий шаг не выполняется
	assert.Equal(t, domain.StateMeetingCreated, resp.Intent.State)
	assert.Equal(t, int64(42), ptr.Value(resp.Intent.MeetingID))
	assert.NotEmpty(t, resp.Intent.LastError)
	f.client.AssertNotCalled(t, "AssignPhysicalRoom", mock.Anything, mock.Anything, mock.Anything)

	// Все повторы с одним ключом идемпотентности
	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[0], keys[2])
	assert.Equal(t, resp.Intent.RoomIdempotencyKey, keys[0])

	// Встреча 42 записана в журнал
	require.Len(t, resp.Orphans, 1)
	orphans := f.listOrphans(t)
	require.Len(t, orphans, 1)
	assert.Equal(t, domain.OrphanMeeting, orphans[0].ResourceType)
	assert.Equal(t, int64(42), orphans[0].ResourceID)
	assert.Equal(t, domain.OrphanReasonRoomCreationFailed, orphans[0].Reason)
	assert.Equal(t, intentID, orphans[0].IntentID)
}

func TestCreateRoom_RejectedIsNotRetried(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &meetingapi.APIError{Status: 400, Message: "invalid name"}).Once()

	_, err := f.uc.CreateMeeting(context.Background(), step(intentID))
	require.NoError(t, err)

	resp, err := f.uc.CreateRoom(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrStepFailed)
	assert.Equal(t, domain.StateMeetingCreated, resp.Intent.State)
	f.client.AssertNumberOfCalls(t, "CreateMeetingRoom", 1)
}

func TestAssignRoom_FailureRecordsMeetingAndRoom(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(&meetingapi.MeetingRoom{ID: 7}, nil).Once()

	// Физическую комнату можно выбрать перед последним шагом
	_, err := f.uc.CreateMeeting(context.Background(), step(intentID))
	require.NoError(t, err)
	resp, err := f.uc.CreateRoom(context.Background(), step(intentID))
	require.NoError(t, err)
	assert.Equal(t, domain.StateRoomCreated, resp.Intent.State)

	_, err = f.uc.AssignRoom(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrPhysicalRoomRequired)

	f.client.On("AssignPhysicalRoom", mock.Anything, &meetingapi.AssignPhysicalRoomRequest{RoomID: 7, PhysicalID: 11}, mock.Anything).
		Return(errors.Join(meetingapi.ErrRejected, errors.New("room already taken"))).Once()

	resp, err = f.uc.AssignRoom(context.Background(), &StepRequest{
		IntentID:    intentID,
		OrganizerID: organizerID,
		PhysicalID:  ptr.Ptr(int64(11)),
	})
	require.ErrorIs(t, err, ErrStepFailed)
	assert.Equal(t, domain.StateRoomCreated, resp.Intent.State)
	assert.Len(t, resp.Orphans, 2)

	orphans := f.listOrphans(t)
	require.Len(t, orphans, 2)
	for _, o := range orphans {
		assert.Equal(t, domain.OrphanReasonAssignmentFailed, o.Reason)
	}
}

func TestCreateMeeting_FailureAbortsIntent(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	f.client.On("InitMeeting", mock.Anything, mock.Anything).
		Return(int64(0), &meetingapi.APIError{Status: 400, Code: meetingapi.CodeDailyMeetingLimit, Message: "limit"}).Once()

	resp, err := f.uc.Advance(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrDailyMeetingLimit)
	assert.Equal(t, domain.StateAborted, resp.Intent.State)
	assert.Empty(t, resp.Orphans)

	_, err = f.uc.Advance(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrIntentAborted)
	f.client.AssertNumberOfCalls(t, "InitMeeting", 1)
}

func TestSteps_CannotBeSkipped(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", ptr.Ptr(int64(5)))

	_, err := f.uc.CreateRoom(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.uc.AssignRoom(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	f.client.AssertNotCalled(t, "CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything)
	f.client.AssertNotCalled(t, "AssignPhysicalRoom", mock.Anything, mock.Anything, mock.Anything)

	// Отклоненные шаги не оставляют бронирование захваченным
	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	resp, err := f.uc.CreateMeeting(context.Background(), step(intentID))
	require.NoError(t, err)
	assert.Equal(t, domain.StepCreateRoom, resp.NextStep)

	_, err = f.uc.CreateMeeting(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSteps_NoConcurrentReentry(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	started := make(chan struct{})
	proceed := make(chan struct{})
	f.client.On("InitMeeting", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-proceed
		}).
		Return(int64(42), nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = f.uc.CreateMeeting(context.Background(), step(intentID))
	}()

	<-started
	_, err := f.uc.CreateMeeting(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrStepInProgress)
	_, err = f.uc.Advance(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrStepInProgress)

	close(proceed)
	wg.Wait()

	require.NoError(t, firstErr)
	f.client.AssertNumberOfCalls(t, "InitMeeting", 1)
}

func TestCancel_DuringStepDiscardsResponse(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	started := make(chan struct{})
	proceed := make(chan struct{})
	f.client.On("InitMeeting", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-proceed
		}).
		Return(int64(42), nil).Once()

	type result struct {
		resp *Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := f.uc.CreateMeeting(context.Background(), step(intentID))
		done <- result{resp, err}
	}()

	<-started
	cancelled, err := f.uc.Cancel(context.Background(), &IntentRequest{IntentID: intentID, OrganizerID: organizerID})
	require.NoError(t, err)
	assert.Equal(t, domain.StateAborted, cancelled.Intent.State)
	assert.Empty(t, cancelled.Orphans)

	close(proceed)
	res := <-done

	assert.ErrorIs(t, res.err, ErrIntentAborted)
	assert.Equal(t, domain.StateAborted, res.resp.Intent.State)
	assert.Nil(t, res.resp.Intent.MeetingID)

	orphans := f.listOrphans(t)
	require.Len(t, orphans, 1)
	assert.Equal(t, int64(42), orphans[0].ResourceID)
	assert.Equal(t, domain.OrphanReasonLateResponse, orphans[0].Reason)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	_, err := f.uc.CreateMeeting(context.Background(), step(intentID))
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), &IntentRequest{IntentID: intentID, OrganizerID: organizerID + 1})
	assert.ErrorIs(t, err, ErrForbidden)

	resp, err := f.uc.Cancel(context.Background(), &IntentRequest{IntentID: intentID, OrganizerID: organizerID})
	require.NoError(t, err)
	assert.Equal(t, domain.StateAborted, resp.Intent.State)
	require.Len(t, resp.Orphans, 1)
	assert.Equal(t, domain.OrphanReasonCancelled, resp.Orphans[0].Reason)

	// Повторная отмена ничего не записывает
	again, err := f.uc.Cancel(context.Background(), &IntentRequest{IntentID: intentID, OrganizerID: organizerID})
	require.NoError(t, err)
	assert.Empty(t, again.Orphans)
	assert.Len(t, f.listOrphans(t), 1)

	_, err = f.uc.CreateRoom(context.Background(), step(intentID))
	assert.ErrorIs(t, err, ErrIntentAborted)
	f.client.AssertNotCalled(t, "CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel_CompletedBooking(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "ONLINE", nil)

	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(&meetingapi.MeetingRoom{ID: 7}, nil).Once()
	_, err := f.uc.Run(context.Background(), step(intentID))
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), &IntentRequest{IntentID: intentID, OrganizerID: organizerID})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestGet_Ownership(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	_, err := f.uc.Get(context.Background(), &IntentRequest{IntentID: intentID, OrganizerID: organizerID + 1})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.uc.Get(context.Background(), &IntentRequest{IntentID: "missing", OrganizerID: organizerID})
	assert.ErrorIs(t, err, ErrIntentNotFound)

	_, err = f.uc.CreateMeeting(context.Background(), &StepRequest{IntentID: intentID, OrganizerID: organizerID + 1})
	assert.ErrorIs(t, err, ErrForbidden)
	f.client.AssertNotCalled(t, "InitMeeting", mock.Anything, mock.Anything)
}

func TestRun_PhysicalWithoutRoomMakesNoCalls(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	resp, err := f.uc.Run(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrPhysicalRoomRequired)
	assert.Equal(t, domain.StateDraft, resp.Intent.State)

	resp, err = f.uc.Advance(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrPhysicalRoomRequired)
	assert.Equal(t, domain.StateDraft, resp.Intent.State)

	f.client.AssertNotCalled(t, "InitMeeting", mock.Anything, mock.Anything)
	f.client.AssertNotCalled(t, "CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.listOrphans(t))

	// С комнатой в запросе бронирование проходит целиком
	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(&meetingapi.MeetingRoom{ID: 7}, nil).Once()
	f.client.On("AssignPhysicalRoom", mock.Anything, &meetingapi.AssignPhysicalRoomRequest{RoomID: 7, PhysicalID: 5}, mock.Anything).
		Return(nil).Once()

	resp, err = f.uc.Run(context.Background(), &StepRequest{
		IntentID:    intentID,
		OrganizerID: organizerID,
		PhysicalID:  ptr.Ptr(int64(5)),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateRoomAssigned, resp.Intent.State)
	assert.Equal(t, int64(5), ptr.Value(resp.Intent.PhysicalID))
	f.client.AssertExpectations(t)
}

func TestRun_RetryAfterRoomCreationFailureClearsLedger(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", ptr.Ptr(int64(5)))

	var keys []string
	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(2)) }).
		Return(nil, &meetingapi.APIError{Status: 409, Message: "room name is busy"}).Once()

	resp, err := f.uc.Run(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrStepFailed)
	assert.Equal(t, domain.StateMeetingCreated, resp.Intent.State)
	require.Len(t, f.listOrphans(t), 1)

	// Повтор с того же шага: встреча не создается заново
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { keys = append(keys, args.String(2)) }).
		Return(&meetingapi.MeetingRoom{ID: 7}, nil).Once()
	f.client.On("AssignPhysicalRoom", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err = f.uc.Run(context.Background(), step(intentID))
	require.NoError(t, err)
	assert.Equal(t, domain.StateRoomAssigned, resp.Intent.State)
	assert.Equal(t, int64(42), ptr.Value(resp.Intent.MeetingID))
	assert.Empty(t, resp.Intent.LastError)

	require.Len(t, keys, 2)
	assert.Equal(t, keys[0], keys[1])
	assert.Empty(t, f.listOrphans(t))
	f.client.AssertNumberOfCalls(t, "InitMeeting", 1)
}

func TestAssignRoom_RetryAfterFailureClearsLedger(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", ptr.Ptr(int64(5)))

	f.client.On("InitMeeting", mock.Anything, mock.Anything).Return(int64(42), nil).Once()
	f.client.On("CreateMeetingRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(&meetingapi.MeetingRoom{ID: 7}, nil).Once()
	f.client.On("AssignPhysicalRoom", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.Join(meetingapi.ErrRejected, errors.New("room already taken"))).Once()

	_, err := f.uc.Run(context.Background(), step(intentID))
	require.ErrorIs(t, err, ErrStepFailed)
	require.Len(t, f.listOrphans(t), 2)

	f.client.On("AssignPhysicalRoom", mock.Anything, &meetingapi.AssignPhysicalRoomRequest{RoomID: 7, PhysicalID: 6}, mock.Anything).
		Return(nil).Once()
	resp, err := f.uc.AssignRoom(context.Background(), &StepRequest{
		IntentID:    intentID,
		OrganizerID: organizerID,
		PhysicalID:  ptr.Ptr(int64(6)),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StateRoomAssigned, resp.Intent.State)
	assert.Empty(t, f.listOrphans(t))
}

func TestCreateMeeting_CallerCancellationKeepsMeeting(t *testing.T) {
	f := newFixture(t)
	intentID := f.start(t, "PHYSICAL", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var callErr error
	f.client.On("InitMeeting", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			// Вызывающий отключился, пока бэкенд создает встречу
			cancel()
			callErr = args.Get(0).(context.Context).Err()
		}).
		Return(int64(42), nil).Once()

	resp, err := f.uc.CreateMeeting(ctx, step(intentID))
	require.NoError(t, err)
	assert.NoError(t, callErr)
	assert.Equal(t, domain.StateMeetingCreated, resp.Intent.State)
	assert.Equal(t, int64(42), ptr.Value(resp.Intent.MeetingID))
	assert.Empty(t, f.listOrphans(t))
}
