package find_available_rooms

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// validateRequest проверяет окно, вместимость и тип комнаты
func validateRequest(req *Request, loc *time.Location) (domain.TimeRangeResult, domain.RoomType, error) {
	window := domain.ValidateTimeRange(req.Start, req.End, loc)
	if !window.Valid {
		return window, "", fmt.Errorf("%w: %s", ErrInvalidTimeRange, window.Error.Error())
	}

	if req.Capacity < domain.MinRequestedCapacity {
		return window, "", ErrInvalidCapacity
	}

	roomType := domain.RoomType(strings.ToUpper(strings.TrimSpace(req.RoomType)))
	if roomType == "" {
		roomType = domain.RoomTypePhysical
	}
	if !roomType.IsValid() {
		return window, "", fmt.Errorf("%w: %q", ErrInvalidRoomType, req.RoomType)
	}

	return window, roomType, nil
}
