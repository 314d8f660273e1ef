package cancel_meeting

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
)

type MeetingService interface {
	Cancel(ctx context.Context, req *models.CancelMeetingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
