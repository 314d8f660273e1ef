package validate_time_range

import "github.com/m04kA/SMC-MeetingBooking/internal/domain"

// ValidateTimeRangeRequest HTTP request model
type ValidateTimeRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TimeRangeErrorResponse причина отказа
type TimeRangeErrorResponse struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateTimeRangeResponse HTTP response model
type ValidateTimeRangeResponse struct {
	Valid bool                    `json:"valid"`
	Start string                  `json:"start,omitempty"`
	End   string                  `json:"end,omitempty"`
	Error *TimeRangeErrorResponse `json:"error,omitempty"`
}

// FromDomainResult конвертирует результат проверки в HTTP response
func FromDomainResult(result domain.TimeRangeResult) *ValidateTimeRangeResponse {
	resp := &ValidateTimeRangeResponse{
		Valid: result.Valid,
		Start: result.Start,
		End:   result.End,
	}
	if result.Error != nil {
		resp.Error = &TimeRangeErrorResponse{
			Code:    string(result.Error.Code),
			Field:   result.Error.Field,
			Message: timeRangeMessages[result.Error.Code],
		}
	}
	return resp
}

// Тексты для пользователя по кодам ошибок
var timeRangeMessages = map[domain.TimeRangeErrorCode]string{
	domain.TimeRangeStartRequired:    "vui lòng chọn thời gian bắt đầu",
	domain.TimeRangeEndRequired:      "vui lòng chọn thời gian kết thúc",
	domain.TimeRangeStartInvalid:     "thời gian bắt đầu không đúng định dạng",
	domain.TimeRangeEndInvalid:       "thời gian kết thúc không đúng định dạng",
	domain.TimeRangeEndNotAfterStart: "thời gian kết thúc phải sau thời gian bắt đầu",
}
