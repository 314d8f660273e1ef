package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingBooking/internal/session"
)

const (
	msgMissingToken = "thiếu mã xác thực, vui lòng đăng nhập"
	msgInvalidToken = "mã xác thực không hợp lệ"
	msgTokenExpired = "phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại"
)

// now подменяется в тестах
var now = time.Now

// Auth создает сессию из заголовка Authorization и кладет ее в контекст
// Подпись проверяется здесь: по claims сессии шлюз сам решает доступ к бронированиям и журналу
func Auth(verifier *session.Verifier) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return authHandler(verifier, next)
	}
}

func authHandler(verifier *session.Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingToken)
			return
		}

		s, err := verifier.Open(header)
		if err != nil {
			if errors.Is(err, session.ErrMissingToken) {
				handlers.RespondError(w, http.StatusUnauthorized, msgMissingToken)
				return
			}
			handlers.RespondError(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		if err := s.Validate(now()); err != nil {
			handlers.RespondError(w, http.StatusUnauthorized, msgTokenExpired)
			return
		}

		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
	})
}
