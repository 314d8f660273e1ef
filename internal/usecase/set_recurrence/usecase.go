package set_recurrence

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
)

// UseCase use case для превращения встречи в серию
// Даты встреч серии вычисляет бэкенд; здесь только один запрос на обновление
type UseCase struct {
	client MeetingAPIClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client MeetingAPIClient, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Execute выполняет use case установки повторения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetRecurrence: meeting=%d, type=%s, until=%s", req.MeetingID, req.Type, req.Until)

	// 1. Валидация входных данных
	spec, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SetRecurrence: validation failed: %v", err)
		return nil, err
	}

	// 2. Один запрос на обновление встречи
	meeting, err := uc.client.UpdateMeeting(ctx, req.MeetingID, &meetingapi.UpdateMeetingRequest{
		RecurrenceType:  string(spec.Type),
		RecurrenceUntil: spec.Until,
		MaxOccurrences:  spec.MaxOccurrences,
	})
	if err != nil {
		// Лимит встреч в день проверяется раньше остальных отказов
		switch {
		case meetingapi.IsDailyMeetingLimit(err):
			uc.logger.Warn("SetRecurrence: meeting=%d exceeds daily meeting limit: %v", req.MeetingID, err)
			return nil, fmt.Errorf("%w: %v", ErrDailyMeetingLimit, err)
		case errors.Is(err, meetingapi.ErrUnauthorized):
			return nil, ErrUnauthorized
		case errors.Is(err, meetingapi.ErrNotFound):
			uc.logger.Warn("SetRecurrence: meeting=%d not found", req.MeetingID)
			return nil, ErrMeetingNotFound
		case errors.Is(err, meetingapi.ErrRejected):
			uc.logger.Warn("SetRecurrence: backend rejected recurrence for meeting=%d: %v", req.MeetingID, err)
			return nil, fmt.Errorf("%w: %v", ErrRejected, err)
		default:
			uc.logger.Error("SetRecurrence: failed to update meeting=%d: %v", req.MeetingID, err)
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	// 3. Бэкенд может вернуть пустое тело; тогда собираем ответ из запроса
	result := toDomainMeeting(meeting, req.MeetingID)
	if result.Recurrence == nil {
		result.Recurrence = spec
	}

	uc.logger.Info("SetRecurrence: meeting=%d is now %s until %s", req.MeetingID, spec.Type, spec.Until)
	return &Response{Meeting: result}, nil
}

func toDomainMeeting(m *meetingapi.Meeting, meetingID int64) *domain.Meeting {
	result := &domain.Meeting{ID: meetingID}
	if m == nil {
		return result
	}

	if m.ID != 0 {
		result.ID = m.ID
	}
	result.Title = m.Title
	result.Description = m.Description
	result.StartTime = m.StartTime
	result.EndTime = m.EndTime
	result.OrganizerID = m.OrganizerID
	result.Status = domain.MeetingStatus(m.Status)
	result.RoomID = m.RoomID

	if m.RecurrenceType != nil {
		spec := &domain.RecurrenceSpec{
			Type:           domain.RecurrenceType(*m.RecurrenceType),
			MaxOccurrences: m.MaxOccurrences,
		}
		if m.RecurrenceUntil != nil {
			spec.Until = *m.RecurrenceUntil
		}
		result.Recurrence = spec
	}
	return result
}
