package set_recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// validateRequest проверяет запрос и возвращает нормализованное правило повторения
func validateRequest(req *Request) (*domain.RecurrenceSpec, error) {
	if req.MeetingID <= 0 {
		return nil, fmt.Errorf("%w: meeting id is required", ErrInvalidInput)
	}

	recurrenceType := domain.RecurrenceType(strings.ToUpper(strings.TrimSpace(req.Type)))
	if !recurrenceType.IsValid() {
		return nil, fmt.Errorf("%w: unknown recurrence type %q", ErrInvalidInput, req.Type)
	}

	until := strings.TrimSpace(req.Until)
	if until == "" {
		return nil, fmt.Errorf("%w: recurrence end date is required", ErrInvalidInput)
	}
	if _, err := time.Parse(domain.DateFormat, until); err != nil {
		return nil, fmt.Errorf("%w: recurrence end date must be YYYY-MM-DD", ErrInvalidInput)
	}
	if start := strings.TrimSpace(req.MeetingStart); start != "" {
		meetingStart, err := types.ParseLocalDateTime(start, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid meeting start: %v", ErrInvalidInput, err)
		}
		// Даты в формате YYYY-MM-DD сравнимы как строки
		if until < meetingStart.Date() {
			return nil, fmt.Errorf("%w: recurrence end date %s is before the meeting date %s",
				ErrInvalidInput, until, meetingStart.Date())
		}
	}

	if req.MaxOccurrences != nil {
		if *req.MaxOccurrences < 1 || *req.MaxOccurrences > domain.MaxRecurrenceOccurrences {
			return nil, fmt.Errorf("%w: max occurrences must be between 1 and %d",
				ErrInvalidInput, domain.MaxRecurrenceOccurrences)
		}
	}

	return &domain.RecurrenceSpec{
		Type:           recurrenceType,
		Until:          until,
		MaxOccurrences: req.MaxOccurrences,
	}, nil
}
