package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MeetingBooking/internal/session"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return token
}

func unsignedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}

func foreignToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("someone-else"))
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	now = func() time.Time { return time.Date(2025, 11, 4, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = time.Now })

	var gotUser int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		require.True(t, ok)
		gotUser = s.UserID()
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "Bearer " + signedToken(t, jwt.MapClaims{"sub": "9", "exp": float64(time.Date(2025, 11, 4, 8, 0, 0, 0, time.UTC).Unix())}), http.StatusUnauthorized},
		{"unsigned admin", "Bearer " + unsignedToken(t, jwt.MapClaims{"user_id": 999, "role": "ADMIN"}), http.StatusUnauthorized},
		{"foreign key", "Bearer " + foreignToken(t, jwt.MapClaims{"user_id": 9}), http.StatusUnauthorized},
		{"valid", "Bearer " + signedToken(t, jwt.MapClaims{"user_id": 9, "exp": float64(time.Date(2025, 11, 4, 10, 0, 0, 0, time.UTC).Unix())}), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Auth(session.NewVerifier("test"))(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
	assert.Equal(t, int64(9), gotUser)
}

type recordedRequest struct {
	method, path, status string
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) ObserveHTTPRequest(method, path, status string, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, path, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeRecorder{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/booking-intents/{intentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/booking-intents/abc", nil))

	require.Len(t, recorder.requests, 1)
	assert.Equal(t, recordedRequest{"GET", "/booking-intents/{intentId}", "202"}, recorder.requests[0])
}
