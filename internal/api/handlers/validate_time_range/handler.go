package validate_time_range

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

type Handler struct {
	location *time.Location
	logger   Logger
}

func NewHandler(location *time.Location, logger Logger) *Handler {
	return &Handler{
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/time-ranges/validate
// Проверка без сетевых вызовов; отказ возвращается как valid=false, а не как ошибка
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateTimeRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-ranges/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result := domain.ValidateTimeRange(req.Start, req.End, h.location)
	handlers.RespondJSON(w, http.StatusOK, FromDomainResult(result))
}
