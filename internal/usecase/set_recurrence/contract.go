package set_recurrence

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
)

// MeetingAPIClient интерфейс клиента бэкенда переговорных
type MeetingAPIClient interface {
	UpdateMeeting(ctx context.Context, meetingID int64, req *meetingapi.UpdateMeetingRequest) (*meetingapi.Meeting, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
