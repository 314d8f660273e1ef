package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// TimeRangeErrorCode identifies why a time range was rejected
type TimeRangeErrorCode string

const (
	TimeRangeStartRequired    TimeRangeErrorCode = "START_REQUIRED"
	TimeRangeEndRequired      TimeRangeErrorCode = "END_REQUIRED"
	TimeRangeStartInvalid     TimeRangeErrorCode = "START_INVALID"
	TimeRangeEndInvalid       TimeRangeErrorCode = "END_INVALID"
	TimeRangeEndNotAfterStart TimeRangeErrorCode = "END_NOT_AFTER_START"
)

// TimeRangeError describes a rejected time range
type TimeRangeError struct {
	Code    TimeRangeErrorCode
	Field   string
	Message string
}

func (e *TimeRangeError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// TimeRangeResult is the outcome of ValidateTimeRange. Start/End are normalized YYYY-MM-DDTHH:mm:ss strings.
type TimeRangeResult struct {
	Valid     bool
	Start     string
	End       string
	StartTime types.LocalDateTime
	EndTime   types.LocalDateTime
	Error     *TimeRangeError
}

// ValidateTimeRange checks that both values are present, parseable and start < end.
// It never panics; failures are reported through Result.Error.
func ValidateTimeRange(start, end string, loc *time.Location) TimeRangeResult {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start == "" {
		return rejected(TimeRangeStartRequired, "start", "start time is required")
	}
	if end == "" {
		return rejected(TimeRangeEndRequired, "end", "end time is required")
	}

	startTime, err := types.ParseLocalDateTime(start, loc)
	if err != nil {
		return rejected(TimeRangeStartInvalid, "start", "start time has an unsupported format")
	}
	endTime, err := types.ParseLocalDateTime(end, loc)
	if err != nil {
		return rejected(TimeRangeEndInvalid, "end", "end time has an unsupported format")
	}

	if !startTime.Before(endTime) {
		return rejected(TimeRangeEndNotAfterStart, "end", "end time must be after start time")
	}

	return TimeRangeResult{
		Valid:     true,
		Start:     startTime.String(),
		End:       endTime.String(),
		StartTime: startTime,
		EndTime:   endTime,
	}
}

func rejected(code TimeRangeErrorCode, field, message string) TimeRangeResult {
	return TimeRangeResult{
		Error: &TimeRangeError{Code: code, Field: field, Message: message},
	}
}
