package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken возвращается, когда токен не передан
	ErrMissingToken = errors.New("session: missing bearer token")

	// ErrMalformedToken возвращается, когда токен не является JWT
	ErrMalformedToken = errors.New("session: malformed token")

	// ErrNoUserID возвращается, когда в токене нет идентификатора пользователя
	ErrNoUserID = errors.New("session: token has no user id claim")

	// ErrExpired возвращается, когда срок действия токена истек
	ErrExpired = errors.New("session: token expired")

	// ErrInvalidSignature возвращается, когда подпись токена не сходится или алгоритм не HS256
	ErrInvalidSignature = errors.New("session: invalid token signature")
)

// Session явный контекст сессии пользователя консоли
// Создается при логине (из bearer токена), очищается при 401 от бэкенда или при выходе
type Session struct {
	mu        sync.RWMutex
	token     string
	userID    int64
	role      string
	expiresAt time.Time
	cleared   bool
}

// New создает сессию из bearer токена без проверки подписи
// Подходит только там, где токен лишь пересылается бэкенду (консольный клиент)
func New(token string) (*Session, error) {
	token = trimBearer(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return fromClaims(token, claims)
}

// Verifier проверяет подпись токена общим с бэкендом HMAC ключом
// Сессии, по которым шлюз отдает собственные данные (бронирования, журнал), создаются только через него
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

// NewVerifier создает проверку подписи HS256
// Срок действия проверяется отдельно через Session.Validate
func NewVerifier(secret string) *Verifier {
	return &Verifier{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
}

// Open проверяет подпись и создает сессию
func (v *Verifier) Open(token string) (*Session, error) {
	token = trimBearer(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	claims := jwt.MapClaims{}
	parsed, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	case err != nil || !parsed.Valid:
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	return fromClaims(token, claims)
}

func trimBearer(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
}

func fromClaims(token string, claims jwt.MapClaims) (*Session, error) {
	userID, ok := extractUserID(claims)
	if !ok {
		return nil, ErrNoUserID
	}

	s := &Session{token: token, userID: userID}

	if role, ok := claims["role"].(string); ok {
		s.role = role
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiresAt = exp.Time
	}

	return s, nil
}

// Token возвращает токен для заголовка Authorization
// false - сессия очищена
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cleared {
		return "", false
	}
	return s.token, true
}

func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// ExpiresAt время истечения токена (нулевое, если claim exp отсутствует)
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Validate проверяет, что сессия активна на момент now
func (s *Session) Validate(now time.Time) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cleared {
		return ErrMissingToken
	}
	if !s.expiresAt.IsZero() && !now.Before(s.expiresAt) {
		return ErrExpired
	}
	return nil
}

// Clear очищает сессию (logout или 401 от бэкенда)
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cleared = true
}

// IsCleared возвращает true, если сессия была очищена
func (s *Session) IsCleared() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cleared
}

type contextKey struct{}

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext извлекает сессию из контекста
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// extractUserID ищет идентификатор пользователя в claims: user_id, userId, затем sub
func extractUserID(claims jwt.MapClaims) (int64, bool) {
	for _, key := range []string{"user_id", "userId", "sub"} {
		raw, ok := claims[key]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case float64:
			if v > 0 {
				return int64(v), true
			}
		case string:
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				return id, true
			}
		}
	}
	return 0, false
}
