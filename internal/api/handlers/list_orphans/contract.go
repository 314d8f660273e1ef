package list_orphans

import (
	"context"

	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
)

type MeetingService interface {
	ListOrphans(ctx context.Context, req *models.ListOrphansRequest) (*models.OrphanListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
