package book_meeting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	intentStore "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/intent"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	"github.com/m04kA/SMC-MeetingBooking/pkg/ptr"
)

// UseCase оркестратор многошагового бронирования
// DRAFT -> MEETING_CREATED -> ROOM_CREATED -> ROOM_ASSIGNED, отмена переводит в ABORTED
// Созданные ресурсы никогда не удаляются: при ошибке или отмене они записываются в журнал
type UseCase struct {
	client       MeetingAPIClient
	store        IntentStore
	orphans      OrphanRepository
	metrics      MetricsRecorder
	retry        RetryPolicy
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client MeetingAPIClient,
	store IntentStore,
	orphans OrphanRepository,
	metrics MetricsRecorder,
	retry RetryPolicy,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:       client,
		store:        store,
		orphans:      orphans,
		metrics:      metrics,
		retry:        retry,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start создает бронирование в состоянии DRAFT; сетевых вызовов нет
func (uc *UseCase) Start(ctx context.Context, req *StartRequest) (*Response, error) {
	uc.logger.Info("BookMeeting.Start: organizer=%d, type=%s, start=%s, end=%s",
		req.OrganizerID, req.RoomType, req.Start, req.End)

	// 1. Валидация входных данных
	d, err := validateStartRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("BookMeeting.Start: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем бронирование; ключи идемпотентности живут столько же, сколько бронирование
	now := uc.timeProvider.Now()
	intent := &domain.BookingIntent{
		ID:                   uuid.NewString(),
		OrganizerID:          req.OrganizerID,
		State:                domain.StateDraft,
		Title:                d.title,
		Description:          d.description,
		Start:                d.window.StartTime,
		End:                  d.window.EndTime,
		Capacity:             req.Capacity,
		RoomType:             d.roomType,
		RoomName:             d.roomName,
		RoomIdempotencyKey:   uuid.NewString(),
		AssignIdempotencyKey: uuid.NewString(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if req.PhysicalID != nil {
		intent.PhysicalID = ptr.Ptr(*req.PhysicalID)
	}

	// 3. Сохраняем
	if err := uc.store.Create(intent); err != nil {
		uc.logger.Error("BookMeeting.Start: failed to store intent: %v", err)
		return nil, fmt.Errorf("%w: failed to store intent: %v", ErrInternal, err)
	}

	uc.logger.Info("BookMeeting.Start: intent=%s created for organizer=%d", intent.ID, intent.OrganizerID)
	return newResponse(intent.Clone()), nil
}

// Get возвращает снимок бронирования
func (uc *UseCase) Get(ctx context.Context, req *IntentRequest) (*Response, error) {
	intent, err := uc.store.Get(req.IntentID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if intent.OrganizerID != req.OrganizerID {
		return nil, ErrForbidden
	}
	return newResponse(intent), nil
}

// CreateMeeting шаг 1: DRAFT -> MEETING_CREATED
func (uc *UseCase) CreateMeeting(ctx context.Context, req *StepRequest) (*Response, error) {
	return uc.executeStep(ctx, req, domain.StepCreateMeeting)
}

// CreateRoom шаг 2: MEETING_CREATED -> ROOM_CREATED (ONLINE сразу в ROOM_ASSIGNED)
func (uc *UseCase) CreateRoom(ctx context.Context, req *StepRequest) (*Response, error) {
	return uc.executeStep(ctx, req, domain.StepCreateRoom)
}

// AssignRoom шаг 3 (только PHYSICAL): ROOM_CREATED -> ROOM_ASSIGNED
func (uc *UseCase) AssignRoom(ctx context.Context, req *StepRequest) (*Response, error) {
	return uc.executeStep(ctx, req, domain.StepAssignRoom)
}

// Advance выполняет ровно один следующий шаг
func (uc *UseCase) Advance(ctx context.Context, req *StepRequest) (*Response, error) {
	current, err := uc.Get(ctx, &IntentRequest{IntentID: req.IntentID, OrganizerID: req.OrganizerID})
	if err != nil {
		return nil, err
	}

	switch {
	case current.Intent.State == domain.StateAborted:
		return current, ErrIntentAborted
	case current.Intent.State.IsTerminal():
		return current, fmt.Errorf("%w: booking is already %s", ErrInvalidTransition, current.Intent.State)
	}

	// Без физической комнаты PHYSICAL бронирование не завершится: встречу не создаем
	if current.NextStep == domain.StepCreateMeeting {
		if err := requirePhysicalRoom(current.Intent, req); err != nil {
			uc.logger.Warn("BookMeeting.Advance: intent=%s: %v", req.IntentID, err)
			return current, err
		}
	}

	return uc.executeStep(ctx, req, current.NextStep)
}

// Run выполняет шаги по порядку до терминального состояния или первой ошибки
// После ошибки следующие шаги не выполняются
func (uc *UseCase) Run(ctx context.Context, req *StepRequest) (*Response, error) {
	current, err := uc.Get(ctx, &IntentRequest{IntentID: req.IntentID, OrganizerID: req.OrganizerID})
	if err != nil {
		return nil, err
	}
	if current.Intent.State == domain.StateAborted {
		return current, ErrIntentAborted
	}

	// 1. Все данные для последнего шага должны быть известны до первого сетевого вызова
	if !current.Intent.State.IsTerminal() {
		if err := requirePhysicalRoom(current.Intent, req); err != nil {
			uc.logger.Warn("BookMeeting.Run: intent=%s: %v", req.IntentID, err)
			return current, err
		}
	}

	// 2. Шаги по порядку
	for current.NextStep != domain.StepNone {
		next, err := uc.executeStep(ctx, req, current.NextStep)
		if err != nil {
			if next == nil {
				next = current
			}
			return next, err
		}
		current = next
	}

	return current, nil
}

// Cancel переводит незавершенное бронирование в ABORTED
// Компенсирующих удалений нет: уже созданные ресурсы записываются в журнал
func (uc *UseCase) Cancel(ctx context.Context, req *IntentRequest) (*Response, error) {
	uc.logger.Info("BookMeeting.Cancel: intent=%s, organizer=%d", req.IntentID, req.OrganizerID)

	now := uc.timeProvider.Now()
	var (
		from           domain.BookingState
		stepInFlight   bool
		alreadyAborted bool
	)

	updated, err := uc.store.Update(req.IntentID, func(current *domain.BookingIntent, inFlight bool) error {
		if current.OrganizerID != req.OrganizerID {
			return ErrForbidden
		}
		switch current.State {
		case domain.StateAborted:
			alreadyAborted = true
			return nil
		case domain.StateRoomAssigned:
			return fmt.Errorf("%w: booking is already completed", ErrInvalidTransition)
		}

		from = current.State
		stepInFlight = inFlight
		current.State = domain.StateAborted
		current.UpdatedAt = now
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrForbidden) && !errors.Is(err, ErrInvalidTransition) {
			err = mapStoreError(err)
		}
		uc.logger.Warn("BookMeeting.Cancel: intent=%s: %v", req.IntentID, err)
		return nil, err
	}

	resp := newResponse(updated)
	if alreadyAborted {
		return resp, nil
	}

	uc.metrics.IncBookingTransition(string(from), string(domain.StateAborted))
	if stepInFlight {
		uc.logger.Warn("BookMeeting.Cancel: intent=%s cancelled while a step is in flight, its response will be discarded", req.IntentID)
	}

	resp.Orphans = uc.recordOrphans(ctx, updated, domain.OrphanReasonCancelled, nil)
	uc.logger.Info("BookMeeting.Cancel: intent=%s aborted from %s, %d resources left on backend",
		req.IntentID, from, len(resp.Orphans))
	return resp, nil
}

// executeStep выполняет один шаг: захват, проверка, сетевой вызов, применение результата
func (uc *UseCase) executeStep(ctx context.Context, req *StepRequest, step domain.BookingStep) (*Response, error) {
	uc.logger.Info("BookMeeting: step=%s, intent=%s, organizer=%d", step, req.IntentID, req.OrganizerID)

	// 1. Захватываем бронирование: одновременно выполняется не больше одного шага
	intent, err := uc.store.Acquire(req.IntentID)
	if err != nil {
		err = mapStoreError(err)
		uc.logger.Warn("BookMeeting: step=%s, intent=%s: %v", step, req.IntentID, err)
		return nil, err
	}

	// 2. Проверяем допустимость шага до сетевого вызова
	if err := validateStep(intent, req, step); err != nil {
		if _, releaseErr := uc.store.Release(req.IntentID, nil); releaseErr != nil {
			uc.logger.Error("BookMeeting: failed to release intent=%s: %v", req.IntentID, releaseErr)
		}
		uc.logger.Warn("BookMeeting: step=%s rejected for intent=%s: %v", step, req.IntentID, err)
		return nil, err
	}
	if step == domain.StepAssignRoom && req.PhysicalID != nil {
		intent.PhysicalID = ptr.Ptr(*req.PhysicalID)
	}

	// 3. Сетевой вызов
	from := intent.State
	outcome, stepErr := uc.perform(ctx, step, intent)

	// 4. Применяем результат к актуальному состоянию (оно могло измениться при отмене)
	now := uc.timeProvider.Now()
	var cancelled bool
	updated, err := uc.store.Release(req.IntentID, func(current *domain.BookingIntent) {
		current.UpdatedAt = now
		if current.State == domain.StateAborted {
			cancelled = true
			return
		}
		if stepErr != nil {
			current.LastError = stepErr.Error()
			// Шаг 1 ничего не оставляет на бэкенде: бронирование начинается заново
			if step == domain.StepCreateMeeting {
				current.State = domain.StateAborted
			}
			return
		}
		outcome.apply(current)
	})
	if err != nil {
		uc.logger.Error("BookMeeting: intent=%s disappeared during step=%s: %v", req.IntentID, step, err)
		if stepErr == nil && outcome.created != nil {
			uc.recordLateResource(ctx, intent, outcome.created)
		}
		return nil, mapStoreError(err)
	}

	resp := newResponse(updated)

	// 5. Бронирование отменили, пока шаг выполнялся: ответ игнорируется
	if cancelled {
		uc.logger.Warn("BookMeeting: intent=%s was cancelled during step=%s, response discarded", req.IntentID, step)
		if stepErr == nil && outcome.created != nil {
			if o := uc.recordLateResource(ctx, updated, outcome.created); o != nil {
				resp.Orphans = append(resp.Orphans, *o)
			}
		}
		return resp, ErrIntentAborted
	}

	// 6. Ошибка шага: состояние не меняется, созданные ранее ресурсы записываются в журнал
	if stepErr != nil {
		uc.metrics.IncBookingStepFailure(string(step))
		uc.logger.Error("BookMeeting: step=%s failed for intent=%s: %v", step, req.IntentID, stepErr)

		switch step {
		case domain.StepCreateMeeting:
			uc.metrics.IncBookingTransition(string(from), string(domain.StateAborted))
		case domain.StepCreateRoom:
			resp.Orphans = uc.recordOrphans(ctx, updated, domain.OrphanReasonRoomCreationFailed, stepErr)
		case domain.StepAssignRoom:
			resp.Orphans = uc.recordOrphans(ctx, updated, domain.OrphanReasonAssignmentFailed, stepErr)
		}
		return resp, mapStepError(step, stepErr)
	}

	uc.metrics.IncBookingTransition(string(from), string(updated.State))
	uc.logger.Info("BookMeeting: intent=%s moved %s -> %s", req.IntentID, from, updated.State)

	// 7. Бронирование завершено: записи об ошибках его шагов снимаются
	if updated.State == domain.StateRoomAssigned {
		uc.resolveOrphans(ctx, updated)
	}
	return resp, nil
}

// perform выполняет сетевой вызов шага
// Отправленный запрос доживает до ответа или таймаута клиента; отмена ctx только прекращает повторы
func (uc *UseCase) perform(ctx context.Context, step domain.BookingStep, intent *domain.BookingIntent) (*stepOutcome, error) {
	callCtx := context.WithoutCancel(ctx)

	switch step {
	case domain.StepCreateMeeting:
		// Без повторов: у бэкенда нет ключа идемпотентности для создания встречи
		meetingID, err := uc.client.InitMeeting(callCtx, &meetingapi.InitMeetingRequest{
			Title:       intent.Title,
			Description: intent.Description,
			StartTime:   intent.Start,
			EndTime:     intent.End,
			OrganizerID: intent.OrganizerID,
		})
		if err != nil {
			return nil, err
		}
		return &stepOutcome{
			state:     domain.StateMeetingCreated,
			meetingID: ptr.Ptr(meetingID),
			created:   &createdResource{resourceType: domain.OrphanMeeting, id: meetingID},
		}, nil

	case domain.StepCreateRoom:
		var room *meetingapi.MeetingRoom
		err := uc.withRetry(ctx, step, intent.ID, func() error {
			var callErr error
			room, callErr = uc.client.CreateMeetingRoom(callCtx, &meetingapi.CreateMeetingRoomRequest{
				MeetingID: ptr.Value(intent.MeetingID),
				Type:      string(intent.RoomType),
				Name:      intent.RoomName,
			}, intent.RoomIdempotencyKey)
			return callErr
		})
		if err != nil {
			return nil, err
		}

		roomID := room.Identifier()
		state := domain.StateRoomCreated
		if intent.RoomType == domain.RoomTypeOnline {
			// Для онлайн-комнаты привязки нет
			state = domain.StateRoomAssigned
		}
		return &stepOutcome{
			state:   state,
			roomID:  ptr.Ptr(roomID),
			created: &createdResource{resourceType: domain.OrphanMeetingRoom, id: roomID},
		}, nil

	case domain.StepAssignRoom:
		physicalID := ptr.Value(intent.PhysicalID)
		err := uc.withRetry(ctx, step, intent.ID, func() error {
			return uc.client.AssignPhysicalRoom(callCtx, &meetingapi.AssignPhysicalRoomRequest{
				RoomID:     ptr.Value(intent.RoomID),
				PhysicalID: physicalID,
			}, intent.AssignIdempotencyKey)
		})
		if err != nil {
			return nil, err
		}
		return &stepOutcome{
			state:      domain.StateRoomAssigned,
			physicalID: ptr.Ptr(physicalID),
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown step %q", ErrInternal, step)
}

// withRetry повторяет временные ошибки (сеть, 5xx) с экспоненциальной паузой
// Ключ идемпотентности один на все попытки шага
func (uc *UseCase) withRetry(ctx context.Context, step domain.BookingStep, intentID string, fn func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = uc.retry.InitialInterval
	policy.MaxInterval = uc.retry.MaxInterval
	policy.MaxElapsedTime = 0

	maxRetries := uc.retry.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(maxRetries)), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := fn()
		if err != nil && !meetingapi.IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		uc.logger.Warn("BookMeeting: step=%s for intent=%s failed on attempt %d, retrying in %s: %v",
			step, intentID, attempt, wait, err)
	})
}

// recordOrphans записывает в журнал все ресурсы, уже созданные бронированием
func (uc *UseCase) recordOrphans(ctx context.Context, intent *domain.BookingIntent, reason domain.OrphanReason, cause error) []domain.OrphanResource {
	resources := make([]createdResource, 0, 2)
	if intent.MeetingID != nil {
		resources = append(resources, createdResource{resourceType: domain.OrphanMeeting, id: *intent.MeetingID})
	}
	if intent.RoomID != nil {
		resources = append(resources, createdResource{resourceType: domain.OrphanMeetingRoom, id: *intent.RoomID})
	}

	var details *string
	if cause != nil {
		details = ptr.Ptr(cause.Error())
	}

	result := make([]domain.OrphanResource, 0, len(resources))
	for _, r := range resources {
		if o := uc.recordOrphan(ctx, intent, r, reason, details); o != nil {
			result = append(result, *o)
		}
	}
	return result
}

// resolveOrphans убирает из журнала ресурсы, которые завершенное бронирование все же использует
func (uc *UseCase) resolveOrphans(ctx context.Context, intent *domain.BookingIntent) {
	resolved, err := uc.orphans.Resolve(context.WithoutCancel(ctx), intent.ID)
	if err != nil {
		uc.logger.Error("BookMeeting: failed to resolve orphans of completed intent=%s: %v", intent.ID, err)
		return
	}
	if resolved > 0 {
		uc.logger.Info("BookMeeting: intent=%s completed, %d orphan records resolved", intent.ID, resolved)
	}
}

// recordLateResource записывает ресурс, созданный уже после отмены бронирования
func (uc *UseCase) recordLateResource(ctx context.Context, intent *domain.BookingIntent, r *createdResource) *domain.OrphanResource {
	return uc.recordOrphan(ctx, intent, *r, domain.OrphanReasonLateResponse, nil)
}

// recordOrphan ошибки журнала логируются и не прерывают операцию
func (uc *UseCase) recordOrphan(
	ctx context.Context,
	intent *domain.BookingIntent,
	r createdResource,
	reason domain.OrphanReason,
	details *string,
) *domain.OrphanResource {
	orphan := &domain.OrphanResource{
		IntentID:     intent.ID,
		OrganizerID:  intent.OrganizerID,
		ResourceType: r.resourceType,
		ResourceID:   r.id,
		Reason:       reason,
		Details:      details,
	}

	// Запись журнала не должна теряться, если клиент уже отключился
	recorded, err := uc.orphans.Record(context.WithoutCancel(ctx), orphan)
	switch {
	case errors.Is(err, orphanRepo.ErrAlreadyRecorded):
		return orphan
	case err != nil:
		uc.logger.Error("BookMeeting: failed to record orphan %s id=%d for intent=%s: %v",
			r.resourceType, r.id, intent.ID, err)
		return orphan
	}

	uc.metrics.IncOrphanResource(string(r.resourceType), string(reason))
	uc.logger.Warn("BookMeeting: %s id=%d left on backend by intent=%s (%s)", r.resourceType, r.id, intent.ID, reason)
	return recorded
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, intentStore.ErrIntentNotFound):
		return ErrIntentNotFound
	case errors.Is(err, intentStore.ErrStepInProgress):
		return ErrStepInProgress
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func mapStepError(step domain.BookingStep, err error) error {
	switch {
	case errors.Is(err, meetingapi.ErrUnauthorized):
		return ErrUnauthorized
	case meetingapi.IsDailyMeetingLimit(err):
		return fmt.Errorf("%w: %v", ErrDailyMeetingLimit, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrStepFailed, step, err)
	}
}
