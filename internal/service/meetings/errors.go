package meetings

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrCannotCancel возвращается, когда бэкенд отказался отменять встречу
	ErrCannotCancel = errors.New("meeting cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrUnauthorized возвращается, когда сессия недействительна
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream возвращается, когда бэкенд недоступен
	ErrUpstream = errors.New("service: backend unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
