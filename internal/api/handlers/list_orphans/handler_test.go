package list_orphans

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
	"github.com/m04kA/SMC-MeetingBooking/internal/session"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
)

type stubService struct {
	got  *models.ListOrphansRequest
	resp *models.OrphanListResponse
	err  error
}

func (s *stubService) ListOrphans(_ context.Context, req *models.ListOrphansRequest) (*models.OrphanListResponse, error) {
	s.got = req
	return s.resp, s.err
}

func request(t *testing.T, target string, claims jwt.MapClaims) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if claims == nil {
		return req
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	sess, err := session.New(token)
	require.NoError(t, err)
	return req.WithContext(session.WithSession(req.Context(), sess))
}

func TestHandle_OrganizerScope(t *testing.T) {
	svc := &stubService{resp: &models.OrphanListResponse{Orphans: []models.OrphanResponse{}}}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).Handle(rec, request(t, "/api/v1/orphans?limit=20", jwt.MapClaims{"user_id": 5}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), svc.got.UserID)
	assert.False(t, svc.got.IsAdmin)
	assert.Equal(t, uint64(20), svc.got.Limit)
}

func TestHandle_Admin(t *testing.T) {
	svc := &stubService{resp: &models.OrphanListResponse{Orphans: []models.OrphanResponse{}}}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.Nop()).Handle(rec, request(t, "/api/v1/orphans", jwt.MapClaims{"user_id": 1, "role": "ADMIN"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.IsAdmin)
	assert.Zero(t, svc.got.Limit)
}

func TestHandle_Errors(t *testing.T) {
	claims := jwt.MapClaims{"user_id": 5}

	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, logger.Nop()).Handle(rec, request(t, "/api/v1/orphans", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&stubService{}, logger.Nop()).Handle(rec, request(t, "/api/v1/orphans?limit=abc", claims))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&stubService{err: errors.New("db down")}, logger.Nop()).Handle(rec, request(t, "/api/v1/orphans", claims))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
