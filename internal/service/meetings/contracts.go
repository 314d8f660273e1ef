package meetings

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
)

// MeetingAPIClient интерфейс клиента бэкенда переговорных
type MeetingAPIClient interface {
	CancelMeeting(ctx context.Context, meetingID int64, reason string) error
}

// OrphanRepository интерфейс журнала "осиротевших" ресурсов
type OrphanRepository interface {
	List(ctx context.Context, filter orphanRepo.ListFilter) ([]*domain.OrphanResource, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
