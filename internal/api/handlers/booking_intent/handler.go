package booking_intent

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingBooking/internal/api/handlers"
	bookMeeting "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
)

// Handler обработчики бронирования с несколькими шагами
// Каждый шаг - отдельный запрос; состояние между запросами хранится на стороне шлюза
type Handler struct {
	useCase     BookingUseCase
	stepTimeout time.Duration
	logger      Logger
}

// NewHandler stepTimeout ограничивает шаги, переживающие отключение клиента; 0 - без ограничения
func NewHandler(useCase BookingUseCase, stepTimeout time.Duration, logger Logger) *Handler {
	return &Handler{
		useCase:     useCase,
		stepTimeout: stepTimeout,
		logger:      logger,
	}
}

// Start POST /api/v1/booking-intents
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.CurrentUserID(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	var req StartBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /booking-intents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Start(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		respondError(w, h.logger, "POST /booking-intents", nil, err)
		return
	}

	h.logger.Info("POST /booking-intents - Intent created: intent_id=%s, user_id=%d", result.Intent.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// Get GET /api/v1/booking-intents/{intentId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.CurrentUserID(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	result, err := h.useCase.Get(r.Context(), &bookMeeting.IntentRequest{
		IntentID:    mux.Vars(r)["intentId"],
		OrganizerID: userID,
	})
	if err != nil {
		respondError(w, h.logger, "GET /booking-intents/{id}", nil, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// Advance POST /api/v1/booking-intents/{intentId}/advance
// Выполняет ровно один следующий шаг
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "POST /booking-intents/{id}/advance", h.useCase.Advance)
}

// Run POST /api/v1/booking-intents/{intentId}/run
// Выполняет оставшиеся шаги до завершения или первой ошибки
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "POST /booking-intents/{id}/run", h.useCase.Run)
}

// Cancel POST /api/v1/booking-intents/{intentId}/cancel
// Уже созданные встреча и комната не удаляются и попадают в журнал
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.CurrentUserID(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	intentID := mux.Vars(r)["intentId"]
	result, err := h.useCase.Cancel(r.Context(), &bookMeeting.IntentRequest{
		IntentID:    intentID,
		OrganizerID: userID,
	})
	if err != nil {
		respondError(w, h.logger, "POST /booking-intents/{id}/cancel", result, err)
		return
	}

	h.logger.Info("POST /booking-intents/{id}/cancel - Intent aborted: intent_id=%s, orphans=%d",
		intentID, len(result.Orphans))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

type stepFunc func(ctx context.Context, req *bookMeeting.StepRequest) (*bookMeeting.Response, error)

func (h *Handler) step(w http.ResponseWriter, r *http.Request, route string, fn stepFunc) {
	userID, ok := handlers.CurrentUserID(r)
	if !ok {
		handlers.RespondUnauthorized(w)
		return
	}

	// Тело необязательно: в нем можно передать физическую комнату для привязки
	var body StepBookingRequest
	if err := handlers.DecodeJSON(r, &body); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	// Отключение клиента не обрывает шаг, ограничение только по stepTimeout
	ctx := context.WithoutCancel(r.Context())
	if h.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.stepTimeout)
		defer cancel()
	}

	intentID := mux.Vars(r)["intentId"]
	result, err := fn(ctx, &bookMeeting.StepRequest{
		IntentID:    intentID,
		OrganizerID: userID,
		PhysicalID:  body.PhysicalID,
	})
	if err != nil {
		respondError(w, h.logger, route, result, err)
		return
	}

	h.logger.Info("%s - intent_id=%s, state=%s", route, intentID, result.Intent.State)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
