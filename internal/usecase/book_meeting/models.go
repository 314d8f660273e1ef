package book_meeting

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// RetryPolicy ограничение повторов для шагов создания комнаты и привязки
type RetryPolicy struct {
	MaxRetries      int           // Количество повторов после первой попытки
	InitialInterval time.Duration // Первая пауза
	MaxInterval     time.Duration // Максимальная пауза
}

// StartRequest модель запроса на начало бронирования
type StartRequest struct {
	OrganizerID int64  // ID организатора (из сессии)
	Title       string // Название встречи
	Description string // Описание (опционально)
	Start       string // Начало (локальное время)
	End         string // Конец (локальное время)
	Capacity    int    // Количество участников (опционально)
	RoomType    string // PHYSICAL или ONLINE
	RoomName    string // Название комнаты встречи (по умолчанию - название встречи)
	PhysicalID  *int64 // Выбранная физическая комната (можно передать позже при привязке)
}

// IntentRequest модель запроса к существующему бронированию
type IntentRequest struct {
	IntentID    string // ID бронирования
	OrganizerID int64  // ID организатора (из сессии)
}

// StepRequest модель запроса на выполнение шага
type StepRequest struct {
	IntentID    string // ID бронирования
	OrganizerID int64  // ID организатора (из сессии)
	PhysicalID  *int64 // Физическая комната для привязки (перекрывает выбранную при старте)
}

// Response модель ответа с состоянием бронирования
type Response struct {
	Intent   *domain.BookingIntent   // Снимок бронирования
	NextStep domain.BookingStep      // Следующий шаг (пусто для терминальных состояний)
	Orphans  []domain.OrphanResource // Ресурсы, оставшиеся на бэкенде после ошибки или отмены
}

func newResponse(intent *domain.BookingIntent) *Response {
	return &Response{
		Intent:   intent,
		NextStep: intent.NextStep(),
	}
}

// stepOutcome результат успешного сетевого вызова шага
type stepOutcome struct {
	state      domain.BookingState
	meetingID  *int64
	roomID     *int64
	physicalID *int64
	created    *createdResource
}

// createdResource ресурс, созданный шагом на бэкенде
type createdResource struct {
	resourceType domain.OrphanResourceType
	id           int64
}

func (o *stepOutcome) apply(intent *domain.BookingIntent) {
	intent.State = o.state
	if o.meetingID != nil {
		intent.MeetingID = o.meetingID
	}
	if o.roomID != nil {
		intent.RoomID = o.roomID
	}
	if o.physicalID != nil {
		intent.PhysicalID = o.physicalID
	}
	intent.LastError = ""
}
