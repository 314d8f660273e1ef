package booking_intent

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/session"
	bookMeeting "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Start(ctx context.Context, req *bookMeeting.StartRequest) (*bookMeeting.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookMeeting.Response)
	return resp, args.Error(1)
}

func (m *mockUseCase) Get(ctx context.Context, req *bookMeeting.IntentRequest) (*bookMeeting.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookMeeting.Response)
	return resp, args.Error(1)
}

func (m *mockUseCase) Advance(ctx context.Context, req *bookMeeting.StepRequest) (*bookMeeting.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookMeeting.Response)
	return resp, args.Error(1)
}

func (m *mockUseCase) Run(ctx context.Context, req *bookMeeting.StepRequest) (*bookMeeting.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookMeeting.Response)
	return resp, args.Error(1)
}

func (m *mockUseCase) Cancel(ctx context.Context, req *bookMeeting.IntentRequest) (*bookMeeting.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*bookMeeting.Response)
	return resp, args.Error(1)
}

func newRouter(uc BookingUseCase) *mux.Router {
	h := NewHandler(uc, time.Minute, logger.Nop())
	r := mux.NewRouter()
	r.HandleFunc("/booking-intents", h.Start).Methods(http.MethodPost)
	r.HandleFunc("/booking-intents/{intentId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/booking-intents/{intentId}/advance", h.Advance).Methods(http.MethodPost)
	r.HandleFunc("/booking-intents/{intentId}/run", h.Run).Methods(http.MethodPost)
	r.HandleFunc("/booking-intents/{intentId}/cancel", h.Cancel).Methods(http.MethodPost)
	return r
}

func authorized(t *testing.T, req *http.Request, userID int64) *http.Request {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": fmt.Sprint(userID)}).SignedString([]byte("k"))
	require.NoError(t, err)
	s, err := session.New(token)
	require.NoError(t, err)
	return req.WithContext(session.WithSession(req.Context(), s))
}

func intentResponse(state domain.BookingState, meetingID *int64) *bookMeeting.Response {
	intent := &domain.BookingIntent{
		ID:          "intent-1",
		OrganizerID: 9,
		State:       state,
		Title:       "Sprint review",
		RoomType:    domain.RoomTypePhysical,
		MeetingID:   meetingID,
	}
	return &bookMeeting.Response{Intent: intent, NextStep: intent.NextStep()}
}

func TestStart(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Start", mock.Anything, mock.MatchedBy(func(req *bookMeeting.StartRequest) bool {
		return req.OrganizerID == 9 && req.Title == "Sprint review" && ptr.Value(req.PhysicalID) == 5
	})).Return(intentResponse(domain.StateDraft, nil), nil).Once()

	body := `{"title":"Sprint review","start":"2025-11-04T15:00","end":"2025-11-04T16:00","roomType":"PHYSICAL","physicalId":5}`
	req := authorized(t, httptest.NewRequest(http.MethodPost, "/booking-intents", strings.NewReader(body)), 9)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp IntentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "DRAFT", resp.State)
	assert.Equal(t, "create_meeting", resp.NextStep)
	uc.AssertExpectations(t)
}

func TestStart_WithoutSession(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&mockUseCase{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/booking-intents", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdvance_EmptyBody(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Advance", mock.Anything, &bookMeeting.StepRequest{IntentID: "intent-1", OrganizerID: 9}).
		Return(intentResponse(domain.StateMeetingCreated, ptr.Ptr(int64(42))), nil).Once()

	req := authorized(t, httptest.NewRequest(http.MethodPost, "/booking-intents/intent-1/advance", nil), 9)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp IntentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(42), ptr.Value(resp.MeetingID))
}

func TestRun_StepFailureReturnsIntent(t *testing.T) {
	failed := intentResponse(domain.StateMeetingCreated, ptr.Ptr(int64(42)))
	failed.Orphans = []domain.OrphanResource{{
		ResourceType: domain.OrphanMeeting, ResourceID: 42, Reason: domain.OrphanReasonRoomCreationFailed,
	}}

	uc := &mockUseCase{}
	uc.On("Run", mock.Anything, mock.Anything).
		Return(failed, fmt.Errorf("%w: create_room: connection reset", bookMeeting.ErrStepFailed)).Once()

	req := authorized(t, httptest.NewRequest(http.MethodPost, "/booking-intents/intent-1/run", nil), 9)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var resp ErrorWithIntentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotNil(t, resp.Intent)
	assert.Equal(t, "MEETING_CREATED", resp.Intent.State)
	require.Len(t, resp.Intent.Orphans, 1)
	assert.Equal(t, "room_creation_failed", resp.Intent.Orphans[0].Reason)
}

func TestAdvance_DailyLimit(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Advance", mock.Anything, mock.Anything).
		Return(intentResponse(domain.StateAborted, nil), bookMeeting.ErrDailyMeetingLimit).Once()

	req := authorized(t, httptest.NewRequest(http.MethodPost, "/booking-intents/intent-1/advance", nil), 9)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp ErrorWithIntentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "DAILY_MEETING_LIMIT_EXCEEDED", resp.Code)
	assert.Contains(t, resp.Error, "2 cuộc họp mỗi ngày")
}

func TestErrorStatuses(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{bookMeeting.ErrIntentNotFound, http.StatusNotFound},
		{bookMeeting.ErrForbidden, http.StatusForbidden},
		{bookMeeting.ErrStepInProgress, http.StatusConflict},
		{bookMeeting.ErrInvalidTransition, http.StatusConflict},
		{bookMeeting.ErrIntentAborted, http.StatusConflict},
		{bookMeeting.ErrPhysicalRoomRequired, http.StatusBadRequest},
		{bookMeeting.ErrUnauthorized, http.StatusUnauthorized},
		{bookMeeting.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Cancel", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			req := authorized(t, httptest.NewRequest(http.MethodPost, "/booking-intents/intent-1/cancel", nil), 9)
			rec := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRun_ClientDisconnectDoesNotCancelSteps(t *testing.T) {
	reqCtx, disconnect := context.WithCancel(context.Background())
	defer disconnect()

	var (
		stepErr     error
		hasDeadline bool
		hasSession  bool
	)
	uc := &mockUseCase{}
	uc.On("Run", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			// Клиент отключился, пока шаг ждет ответа бэкенда
			disconnect()
			time.Sleep(10 * time.Millisecond)
			stepErr = ctx.Err()
			_, hasDeadline = ctx.Deadline()
			_, hasSession = session.FromContext(ctx)
		}).
		Return(intentResponse(domain.StateMeetingCreated, ptr.Ptr(int64(42))), nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/booking-intents/intent-1/run", nil).WithContext(reqCtx)
	req = authorized(t, req, 9)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Error(t, reqCtx.Err())
	assert.NoError(t, stepErr)
	assert.True(t, hasDeadline)
	assert.True(t, hasSession)
	uc.AssertExpectations(t)
}
