package check_equipment

import (
	"context"

	checkEquipment "github.com/m04kA/SMC-MeetingBooking/internal/usecase/check_equipment"
)

type CheckEquipmentUseCase interface {
	Execute(ctx context.Context, req *checkEquipment.Request) (*checkEquipment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
