package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	pingTimeout = 2 * time.Second
)

// Response тело ответа health check
type Response struct {
	Status        string `json:"status"`
	Storage       string `json:"storage"`
	ActiveIntents int    `json:"activeIntents"`
}

type Handler struct {
	db      Pinger
	intents IntentCounter
	logger  Logger
}

func NewHandler(db Pinger, intents IntentCounter, logger Logger) *Handler {
	return &Handler{
		db:      db,
		intents: intents,
		logger:  logger,
	}
}

// Handle GET /api/v1/health
// Бэкенд переговорных не опрашивается: его недоступность видна по ответам 502
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := Response{
		Status:        statusOK,
		Storage:       statusOK,
		ActiveIntents: h.intents.Len(),
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Storage ping failed: %v", err)
		resp.Status = statusDegraded
		resp.Storage = err.Error()
		handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
