package find_available_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	findAvailableRooms "github.com/m04kA/SMC-MeetingBooking/internal/usecase/find_available_rooms"
)

const (
	msgInvalidTimeRange = "khoảng thời gian không hợp lệ: thời gian kết thúc phải sau thời gian bắt đầu"
	msgInvalidCapacity  = "số người tham gia phải lớn hơn 0"
	msgInvalidRoomType  = "loại phòng không hợp lệ"
	msgOnlineNotReady   = "tìm phòng trực tuyến chưa được hỗ trợ"
	msgFetchFailed      = "không thể tải danh sách phòng trống, vui lòng thử lại"
)

type Handler struct {
	useCase FindAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase FindAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FindAvailableRoomsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/available - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, findAvailableRooms.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, findAvailableRooms.ErrInvalidCapacity):
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, findAvailableRooms.ErrInvalidRoomType):
			handlers.RespondBadRequest(w, msgInvalidRoomType)

		case errors.Is(err, findAvailableRooms.ErrOnlineRoomsUnsupported):
			h.logger.Warn("POST /rooms/available - Online room availability requested")
			handlers.RespondError(w, http.StatusNotImplemented, msgOnlineNotReady)

		case errors.Is(err, findAvailableRooms.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, findAvailableRooms.ErrUpstream):
			h.logger.Error("POST /rooms/available - Backend failure: %v", err)
			handlers.RespondBadGateway(w, msgFetchFailed)

		default:
			h.logger.Error("POST /rooms/available - Failed to find rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/available - %d rooms found for capacity=%d", len(result.Rooms), req.Capacity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
