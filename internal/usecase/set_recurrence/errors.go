package set_recurrence

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("set_recurrence: invalid input data")

	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("set_recurrence: meeting not found")

	// ErrDailyMeetingLimit возвращается, когда серия нарушает лимит встреч организатора в день
	ErrDailyMeetingLimit = errors.New("set_recurrence: daily meeting limit exceeded")

	// ErrRejected возвращается, когда бэкенд отклонил повторение по другой причине
	ErrRejected = errors.New("set_recurrence: recurrence rejected")

	// ErrUnauthorized возвращается, когда сессия недействительна
	ErrUnauthorized = errors.New("set_recurrence: unauthorized")

	// ErrUpstream возвращается, когда бэкенд недоступен
	ErrUpstream = errors.New("set_recurrence: backend unavailable")
)
