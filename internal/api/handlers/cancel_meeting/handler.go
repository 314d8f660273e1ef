package cancel_meeting

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings"
)

const (
	msgInvalidMeetingID = "mã cuộc họp không hợp lệ"
	msgReasonRequired   = "vui lòng nhập lý do hủy (tối đa 500 ký tự)"
	msgNotFound         = "không tìm thấy cuộc họp"
	msgCannotCancel     = "cuộc họp không thể hủy"
	msgUpstream         = "hủy cuộc họp không thành công, vui lòng thử lại"
)

type Handler struct {
	service MeetingService
	logger  Logger
}

func NewHandler(service MeetingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/meetings/{meetingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /meetings/{id}/cancel - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	var req CancelMeetingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /meetings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), req.ToServiceRequest(meetingID))
	if err != nil {
		switch {
		case errors.Is(err, meetings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, meetings.ErrMeetingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, meetings.ErrCannotCancel):
			h.logger.Warn("POST /meetings/{id}/cancel - Cannot cancel: meeting_id=%d", meetingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, meetings.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, meetings.ErrUpstream):
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("POST /meetings/{id}/cancel - Failed to cancel meeting: meeting_id=%d, error=%v",
				meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /meetings/{id}/cancel - Meeting cancelled: meeting_id=%d", meetingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
