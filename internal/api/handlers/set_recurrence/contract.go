package set_recurrence

import (
	"context"

	setRecurrence "github.com/m04kA/SMC-MeetingBooking/internal/usecase/set_recurrence"
)

type SetRecurrenceUseCase interface {
	Execute(ctx context.Context, req *setRecurrence.Request) (*setRecurrence.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
