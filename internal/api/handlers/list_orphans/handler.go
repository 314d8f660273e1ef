package list_orphans

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
)

const (
	// roleAdmin роль в токене, которой виден весь журнал
	roleAdmin = "ADMIN"

	maxLimit = 1000

	msgInvalidLimit = "tham số limit không hợp lệ"
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

// Handle GET /api/v1/orphans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	// Получаем limit из query параметров (опционально)
	var limit uint64
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil || parsed == 0 || parsed > maxLimit {
			h.logger.Warn("GET /orphans - Invalid limit: %q", v)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.ListOrphans(r.Context(), &models.ListOrphansRequest{
		UserID:  sess.UserID(),
		IsAdmin: sess.Role() == roleAdmin,
		Limit:   limit,
	})
	if err != nil {
		h.logger.Error("GET /orphans - Failed to list orphans: user_id=%d, error=%v", sess.UserID(), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
