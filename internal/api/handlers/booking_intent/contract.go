package booking_intent

import (
	"context"

	bookMeeting "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
)

// BookingUseCase оркестратор бронирования
type BookingUseCase interface {
	Start(ctx context.Context, req *bookMeeting.StartRequest) (*bookMeeting.Response, error)
	Get(ctx context.Context, req *bookMeeting.IntentRequest) (*bookMeeting.Response, error)
	Advance(ctx context.Context, req *bookMeeting.StepRequest) (*bookMeeting.Response, error)
	Run(ctx context.Context, req *bookMeeting.StepRequest) (*bookMeeting.Response, error)
	Cancel(ctx context.Context, req *bookMeeting.IntentRequest) (*bookMeeting.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
