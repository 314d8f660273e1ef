package set_recurrence

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	setRecurrence "github.com/m04kA/SMC-MeetingBooking/internal/usecase/set_recurrence"
)

const (
	msgInvalidMeetingID = "mã cuộc họp không hợp lệ"
	msgInvalidInput     = "thông tin lặp lại không hợp lệ"
	msgNotFound         = "không tìm thấy cuộc họp"
	msgRejected         = "không thể thiết lập lặp lại cho cuộc họp"
	msgUpstream         = "thiết lập lặp lại không thành công, vui lòng thử lại"
)

type Handler struct {
	useCase SetRecurrenceUseCase
	logger  Logger
}

func NewHandler(useCase SetRecurrenceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/meetings/{meetingId}/recurrence
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := strconv.ParseInt(mux.Vars(r)["meetingId"], 10, 64)
	if err != nil || meetingID <= 0 {
		h.logger.Warn("PUT /meetings/{id}/recurrence - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	var req SetRecurrenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /meetings/{id}/recurrence - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(meetingID))
	if err != nil {
		switch {
		case errors.Is(err, setRecurrence.ErrDailyMeetingLimit):
			// Отдельный текст вместо общей ошибки
			h.logger.Warn("PUT /meetings/{id}/recurrence - Daily meeting limit: meeting_id=%d", meetingID)
			handlers.RespondErrorWithCode(w, http.StatusUnprocessableEntity,
				handlers.CodeDailyMeetingLimit, handlers.MsgDailyMeetingLimit)

		case errors.Is(err, setRecurrence.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, setRecurrence.ErrMeetingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, setRecurrence.ErrRejected):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgRejected)

		case errors.Is(err, setRecurrence.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, setRecurrence.ErrUpstream):
			h.logger.Error("PUT /meetings/{id}/recurrence - Backend failure: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondBadGateway(w, msgUpstream)

		default:
			h.logger.Error("PUT /meetings/{id}/recurrence - Failed: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /meetings/{id}/recurrence - Recurrence set: meeting_id=%d", meetingID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
