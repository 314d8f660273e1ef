package find_available_rooms

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
)

// MeetingAPIClient интерфейс клиента бэкенда переговорных
type MeetingAPIClient interface {
	FilterAvailablePhysicalRooms(ctx context.Context, req *meetingapi.FilterAvailableRequest) ([]meetingapi.PhysicalRoom, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
