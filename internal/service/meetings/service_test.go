package meetings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) CancelMeeting(ctx context.Context, meetingID int64, reason string) error {
	return m.Called(ctx, meetingID, reason).Error(0)
}

type mockOrphans struct {
	mock.Mock
}

func (m *mockOrphans) List(ctx context.Context, filter orphanRepo.ListFilter) ([]*domain.OrphanResource, error) {
	args := m.Called(ctx, filter)
	list, _ := args.Get(0).([]*domain.OrphanResource)
	return list, args.Error(1)
}

func TestCancel(t *testing.T) {
	client := &mockClient{}
	client.On("CancelMeeting", mock.Anything, int64(42), "room was double booked").Return(nil).Once()

	svc := NewService(client, &mockOrphans{}, logger.Nop())
	err := svc.Cancel(context.Background(), &models.CancelMeetingRequest{MeetingID: 42, Reason: "  room was double booked "})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestCancel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CancelMeetingRequest
		backend error
		wantErr error
	}{
		{"no reason", models.CancelMeetingRequest{MeetingID: 1}, nil, ErrInvalidInput},
		{"no meeting", models.CancelMeetingRequest{Reason: "x"}, nil, ErrInvalidInput},
		{"not found", models.CancelMeetingRequest{MeetingID: 1, Reason: "x"}, errors.Join(meetingapi.ErrNotFound), ErrMeetingNotFound},
		{"already completed", models.CancelMeetingRequest{MeetingID: 1, Reason: "x"}, errors.Join(meetingapi.ErrRejected), ErrCannotCancel},
		{"unauthorized", models.CancelMeetingRequest{MeetingID: 1, Reason: "x"}, meetingapi.ErrUnauthorized, ErrUnauthorized},
		{"unavailable", models.CancelMeetingRequest{MeetingID: 1, Reason: "x"}, errors.Join(meetingapi.ErrUnavailable), ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{}
			if tt.backend != nil {
				client.On("CancelMeeting", mock.Anything, mock.Anything, mock.Anything).Return(tt.backend).Once()
			}
			err := NewService(client, &mockOrphans{}, logger.Nop()).Cancel(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestListOrphans_ScopedToOrganizer(t *testing.T) {
	repo := &mockOrphans{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f orphanRepo.ListFilter) bool {
		return f.OrganizerID != nil && *f.OrganizerID == 9 && f.Limit == defaultOrphansLimit
	})).Return([]*domain.OrphanResource{
		{ID: 1, IntentID: "i", OrganizerID: 9, ResourceType: domain.OrphanMeeting, ResourceID: 42, Reason: domain.OrphanReasonRoomCreationFailed},
	}, nil).Once()

	resp, err := NewService(&mockClient{}, repo, logger.Nop()).ListOrphans(context.Background(), &models.ListOrphansRequest{UserID: 9})
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "MEETING", resp.Orphans[0].ResourceType)
	repo.AssertExpectations(t)
}

func TestListOrphans_Admin(t *testing.T) {
	repo := &mockOrphans{}
	repo.On("List", mock.Anything, orphanRepo.ListFilter{Limit: 10}).Return(nil, nil).Once()

	resp, err := NewService(&mockClient{}, repo, logger.Nop()).ListOrphans(context.Background(), &models.ListOrphansRequest{
		UserID: 1, IsAdmin: true, Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.NotNil(t, resp.Orphans)
}
