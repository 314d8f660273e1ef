package booking_intent

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	bookMeeting "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
)

const (
	msgInvalidInput         = "thông tin cuộc họp không hợp lệ"
	msgInvalidTimeRange     = "khoảng thời gian không hợp lệ: thời gian kết thúc phải sau thời gian bắt đầu"
	msgPhysicalRoomRequired = "vui lòng chọn phòng"
	msgNotFound             = "không tìm thấy yêu cầu đặt phòng hoặc yêu cầu đã hết hạn"
	msgForbidden            = "bạn không có quyền thao tác với yêu cầu đặt phòng này"
	msgStepInProgress       = "yêu cầu đang được xử lý, vui lòng đợi"
	msgInvalidTransition    = "không thể thực hiện bước này ở trạng thái hiện tại"
	msgAborted              = "yêu cầu đặt phòng đã bị hủy"
	msgStepFailed           = "đặt phòng không thành công, vui lòng thử lại"
)

// respondError отображает ошибки оркестратора в HTTP ответ
// Если есть снимок бронирования, он возвращается вместе с ошибкой
func respondError(w http.ResponseWriter, logger Logger, route string, resp *bookMeeting.Response, err error) {
	status, code, message := http.StatusInternalServerError, "", ""

	switch {
	case errors.Is(err, bookMeeting.ErrInvalidTimeRange):
		status, message = http.StatusBadRequest, msgInvalidTimeRange
	case errors.Is(err, bookMeeting.ErrInvalidInput):
		status, message = http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, bookMeeting.ErrPhysicalRoomRequired):
		status, message = http.StatusBadRequest, msgPhysicalRoomRequired
	case errors.Is(err, bookMeeting.ErrIntentNotFound):
		status, message = http.StatusNotFound, msgNotFound
	case errors.Is(err, bookMeeting.ErrForbidden):
		status, message = http.StatusForbidden, msgForbidden
	case errors.Is(err, bookMeeting.ErrStepInProgress):
		status, message = http.StatusConflict, msgStepInProgress
	case errors.Is(err, bookMeeting.ErrInvalidTransition):
		status, message = http.StatusConflict, msgInvalidTransition
	case errors.Is(err, bookMeeting.ErrIntentAborted):
		status, message = http.StatusConflict, msgAborted
	case errors.Is(err, bookMeeting.ErrDailyMeetingLimit):
		status, code, message = http.StatusUnprocessableEntity, handlers.CodeDailyMeetingLimit, handlers.MsgDailyMeetingLimit
	case errors.Is(err, bookMeeting.ErrUnauthorized):
		handlers.RespondUnauthorized(w)
		return
	case errors.Is(err, bookMeeting.ErrStepFailed):
		status, message = http.StatusBadGateway, msgStepFailed
	default:
		logger.Error("%s - Unexpected error: %v", route, err)
		handlers.RespondInternalError(w)
		return
	}

	if status >= http.StatusInternalServerError {
		logger.Error("%s - %v", route, err)
	} else {
		logger.Warn("%s - %v", route, err)
	}

	handlers.RespondJSON(w, status, &ErrorWithIntentResponse{
		Error:  message,
		Code:   code,
		Intent: FromUseCaseResponse(resp),
	})
}
