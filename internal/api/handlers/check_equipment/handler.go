package check_equipment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	checkEquipment "github.com/m04kA/SMC-MeetingBooking/internal/usecase/check_equipment"
)

const (
	msgInvalidTimeRange = "khoảng thời gian không hợp lệ: thời gian kết thúc phải sau thời gian bắt đầu"
	msgInvalidItems     = "danh sách thiết bị không hợp lệ"
	msgFetchFailed      = "không thể kiểm tra thiết bị, vui lòng thử lại"
)

type Handler struct {
	useCase CheckEquipmentUseCase
	logger  Logger
}

func NewHandler(useCase CheckEquipmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/equipment/availability
// Ответ информационный: оборудование не резервируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, checkEquipment.ErrInvalidTimeRange):
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, checkEquipment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidItems)

		case errors.Is(err, checkEquipment.ErrUnauthorized):
			handlers.RespondUnauthorized(w)

		case errors.Is(err, checkEquipment.ErrUpstream):
			h.logger.Error("POST /equipment/availability - Backend failure: %v", err)
			handlers.RespondBadGateway(w, msgFetchFailed)

		default:
			h.logger.Error("POST /equipment/availability - Failed to check equipment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /equipment/availability - %d items checked, all_ok=%t", len(result.Items), result.AllOK)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
