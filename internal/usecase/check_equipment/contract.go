package check_equipment

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// MeetingAPIClient интерфейс клиента бэкенда переговорных
type MeetingAPIClient interface {
	GetAvailableEquipment(ctx context.Context, start, end types.LocalDateTime) ([]meetingapi.EquipmentAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
