package meetings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
)

// defaultOrphansLimit ограничение списка журнала по умолчанию
const defaultOrphansLimit = 100

// Service сервис для операций над уже созданными встречами
type Service struct {
	client     MeetingAPIClient
	orphanRepo OrphanRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(client MeetingAPIClient, orphanRepo OrphanRepository, logger Logger) *Service {
	return &Service{
		client:     client,
		orphanRepo: orphanRepo,
		logger:     logger,
	}
}

// Cancel отменяет встречу с указанием причины
// Статус меняет бэкенд; клиент только запрашивает CANCELLED
func (s *Service) Cancel(ctx context.Context, req *models.CancelMeetingRequest) error {
	s.logger.Info("Cancel: meeting=%d", req.MeetingID)

	reason := strings.TrimSpace(req.Reason)
	if req.MeetingID <= 0 {
		return fmt.Errorf("%w: meeting id is required", ErrInvalidInput)
	}
	if reason == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReason {
		return fmt.Errorf("%w: cancellation reason is longer than %d characters", ErrInvalidInput, domain.MaxCancellationReason)
	}

	if err := s.client.CancelMeeting(ctx, req.MeetingID, reason); err != nil {
		switch {
		case errors.Is(err, meetingapi.ErrUnauthorized):
			return ErrUnauthorized
		case errors.Is(err, meetingapi.ErrNotFound):
			s.logger.Warn("Cancel: meeting=%d not found", req.MeetingID)
			return ErrMeetingNotFound
		case errors.Is(err, meetingapi.ErrRejected):
			s.logger.Warn("Cancel: backend refused to cancel meeting=%d: %v", req.MeetingID, err)
			return fmt.Errorf("%w: %v", ErrCannotCancel, err)
		default:
			s.logger.Error("Cancel: failed to cancel meeting=%d: %v", req.MeetingID, err)
			return fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	s.logger.Info("Cancel: meeting=%d cancelled", req.MeetingID)
	return nil
}

// ListOrphans возвращает записи журнала "осиротевших" ресурсов
// Организатор видит только свои записи
func (s *Service) ListOrphans(ctx context.Context, req *models.ListOrphansRequest) (*models.OrphanListResponse, error) {
	s.logger.Info("ListOrphans: user=%d, admin=%t", req.UserID, req.IsAdmin)

	filter := orphanRepo.ListFilter{Limit: req.Limit}
	if filter.Limit == 0 {
		filter.Limit = defaultOrphansLimit
	}
	if !req.IsAdmin {
		organizerID := req.UserID
		filter.OrganizerID = &organizerID
	}

	orphans, err := s.orphanRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListOrphans: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOrphans - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainOrphanList(orphans), nil
}
