package book_meeting

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_meeting: invalid input data")

	// ErrInvalidTimeRange возвращается при некорректном окне времени
	ErrInvalidTimeRange = errors.New("book_meeting: invalid time range")

	// ErrIntentNotFound возвращается, когда бронирование не найдено или истекло
	ErrIntentNotFound = errors.New("book_meeting: booking intent not found")

	// ErrForbidden возвращается, когда бронированием управляет не его организатор
	ErrForbidden = errors.New("book_meeting: booking intent belongs to another organizer")

	// ErrStepInProgress возвращается при попытке запустить шаг, пока выполняется предыдущий
	ErrStepInProgress = errors.New("book_meeting: another step is in progress")

	// ErrInvalidTransition возвращается, когда шаг недопустим из текущего состояния
	ErrInvalidTransition = errors.New("book_meeting: step is not allowed in current state")

	// ErrIntentAborted возвращается, когда бронирование отменено
	ErrIntentAborted = errors.New("book_meeting: booking intent was cancelled")

	// ErrPhysicalRoomRequired возвращается, когда для привязки не выбрана физическая комната
	ErrPhysicalRoomRequired = errors.New("book_meeting: physical room is not selected")

	// ErrDailyMeetingLimit возвращается, когда бэкенд отклонил встречу из-за лимита встреч в день
	ErrDailyMeetingLimit = errors.New("book_meeting: daily meeting limit exceeded")

	// ErrUnauthorized возвращается, когда сессия недействительна
	ErrUnauthorized = errors.New("book_meeting: unauthorized")

	// ErrStepFailed возвращается, когда бэкенд не выполнил шаг
	ErrStepFailed = errors.New("book_meeting: step failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_meeting: internal error")
)
