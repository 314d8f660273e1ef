package find_available_rooms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
)

// UseCase use case для поиска свободных комнат на окно времени
type UseCase struct {
	client   MeetingAPIClient
	location *time.Location
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client MeetingAPIClient, location *time.Location, logger Logger) *UseCase {
	return &UseCase{
		client:   client,
		location: location,
		logger:   logger,
	}
}

// Execute выполняет поиск свободных комнат
// Пересечения с бронированиями считает бэкенд; фильтр по вместимости применяется здесь как окончательный
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindAvailableRooms: start=%s, end=%s, capacity=%d, type=%s",
		req.Start, req.End, req.Capacity, req.RoomType)

	// 1. Валидация входных данных
	window, roomType, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("FindAvailableRooms: validation failed: %v", err)
		return nil, err
	}

	// 2. Онлайн-комнаты не поддерживаются
	if roomType == domain.RoomTypeOnline {
		return nil, ErrOnlineRoomsUnsupported
	}

	// 3. Один запрос к бэкенду на окно и вместимость
	rooms, err := uc.client.FilterAvailablePhysicalRooms(ctx, &meetingapi.FilterAvailableRequest{
		StartTime: window.StartTime,
		EndTime:   window.EndTime,
		Capacity:  req.Capacity,
	})
	if err != nil {
		if errors.Is(err, meetingapi.ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		uc.logger.Error("FindAvailableRooms: failed to fetch rooms: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	// 4. Фильтр по вместимости с сохранением порядка бэкенда
	filtered := domain.FilterByCapacity(toDomainRooms(rooms), req.Capacity)

	uc.logger.Info("FindAvailableRooms: backend returned %d rooms, %d fit capacity=%d",
		len(rooms), len(filtered), req.Capacity)

	return &Response{
		Start:   window.StartTime,
		End:     window.EndTime,
		Rooms:   filtered,
		NoRooms: len(filtered) == 0,
	}, nil
}

func toDomainRooms(rooms []meetingapi.PhysicalRoom) []domain.PhysicalRoom {
	result := make([]domain.PhysicalRoom, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, domain.PhysicalRoom{
			ID:        r.ID,
			Name:      r.Name,
			Capacity:  r.Capacity,
			Location:  r.Location,
			Equipment: r.Equipment,
			Status:    domain.RoomStatus(r.Status),
		})
	}
	return result
}
