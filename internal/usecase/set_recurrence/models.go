package set_recurrence

import "github.com/m04kA/SMC-MeetingBooking/internal/domain"

// Request модель запроса на установку повторения
type Request struct {
	MeetingID      int64  // ID встречи (встреча и комната уже созданы)
	Type           string // DAILY, WEEKLY или MONTHLY
	Until          string // Последняя дата серии, YYYY-MM-DD включительно
	MaxOccurrences *int   // Ограничение количества встреч (опционально)
	MeetingStart   string // Начало встречи (опционально); серия не может закончиться раньше этой даты
}

// Response модель ответа с обновленной встречей
type Response struct {
	Meeting *domain.Meeting
}
