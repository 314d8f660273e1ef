package check_equipment

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// validateRequest проверяет окно и список оборудования
func validateRequest(req *Request, loc *time.Location) (domain.TimeRangeResult, error) {
	window := domain.ValidateTimeRange(req.Start, req.End, loc)
	if !window.Valid {
		return window, fmt.Errorf("%w: %s", ErrInvalidTimeRange, window.Error.Error())
	}

	seen := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		key := normalizeName(item.Name)
		if key == "" {
			return window, fmt.Errorf("%w: equipment name is required", ErrInvalidInput)
		}
		if item.Quantity < 1 {
			return window, fmt.Errorf("%w: quantity for %q must be at least 1", ErrInvalidInput, item.Name)
		}
		if _, ok := seen[key]; ok {
			return window, fmt.Errorf("%w: %q is listed twice", ErrInvalidInput, item.Name)
		}
		seen[key] = struct{}{}
	}

	return window, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
