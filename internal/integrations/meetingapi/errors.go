package meetingapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized возвращается при 401 от бэкенда или отсутствии сессии
	// Сессия при этом очищается
	ErrUnauthorized = errors.New("meetingapi: unauthorized")

	// ErrNotFound возвращается, когда ресурс не найден
	ErrNotFound = errors.New("meetingapi: resource not found")

	// ErrRejected возвращается, когда бэкенд отклонил запрос (4xx, бизнес-правила)
	ErrRejected = errors.New("meetingapi: request rejected")

	// ErrUnavailable возвращается при сетевых ошибках и 5xx; такие ошибки можно повторять
	ErrUnavailable = errors.New("meetingapi: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("meetingapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("meetingapi client: invalid response")
)

// Код ошибки бэкенда для лимита встреч организатора в день
const CodeDailyMeetingLimit = "DAILY_MEETING_LIMIT_EXCEEDED"

// Подстрока сообщения бэкенда, по которой распознается лимит встреч (для совместимости со старым бэкендом)
const dailyMeetingLimitMarker = "daily meeting limit"

// APIError ошибка, пришедшая от бэкенда
type APIError struct {
	Status  int
	Code    string
	Message string
	kind    error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%v: status %d, code %s: %s", e.kind, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%v: status %d: %s", e.kind, e.Status, e.Message)
}

// Unwrap позволяет сравнивать APIError с ErrNotFound/ErrRejected/ErrUnavailable через errors.Is
func (e *APIError) Unwrap() error {
	return e.kind
}

// IsRetryable возвращает true для временных ошибок (сеть, 5xx)
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsDailyMeetingLimit распознает нарушение лимита встреч организатора в день
// Сначала по структурированному коду, затем по подстроке сообщения
func IsDailyMeetingLimit(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == CodeDailyMeetingLimit {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), dailyMeetingLimitMarker)
}
