package book_meeting

import (
	"context"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
)

// MeetingAPIClient интерфейс клиента бэкенда для шагов бронирования
type MeetingAPIClient interface {
	InitMeeting(ctx context.Context, req *meetingapi.InitMeetingRequest) (int64, error)
	CreateMeetingRoom(ctx context.Context, req *meetingapi.CreateMeetingRoomRequest, idempotencyKey string) (*meetingapi.MeetingRoom, error)
	AssignPhysicalRoom(ctx context.Context, req *meetingapi.AssignPhysicalRoomRequest, idempotencyKey string) error
}

// IntentStore интерфейс хранилища незавершенных бронирований
type IntentStore interface {
	Create(intent *domain.BookingIntent) error
	Get(id string) (*domain.BookingIntent, error)
	Acquire(id string) (*domain.BookingIntent, error)
	Release(id string, apply func(current *domain.BookingIntent)) (*domain.BookingIntent, error)
	Update(id string, fn func(current *domain.BookingIntent, inFlight bool) error) (*domain.BookingIntent, error)
}

// OrphanRepository интерфейс журнала "осиротевших" ресурсов
type OrphanRepository interface {
	Record(ctx context.Context, orphan *domain.OrphanResource) (*domain.OrphanResource, error)
	Resolve(ctx context.Context, intentID string) (int64, error)
}

// MetricsRecorder интерфейс для метрик переходов
type MetricsRecorder interface {
	IncBookingTransition(from, to string)
	IncBookingStepFailure(step string)
	IncOrphanResource(resourceType, reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
