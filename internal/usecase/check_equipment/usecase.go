package check_equipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
)

// UseCase use case для проверки остатков оборудования на окно времени
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

// Execute выполняет проверку
// available = total - maintenance - booked; классификация зависит только от (available, requested)
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckEquipment: start=%s, end=%s, items=%d", req.Start, req.End, len(req.Items))

	// 1. Валидация входных данных
	window, err := validateRequest(req, uc.location)
	if err != nil {
		uc.logger.Warn("CheckEquipment: validation failed: %v", err)
		return nil, err
	}

	// 2. Остатки на окно
	stock, err := uc.client.GetAvailableEquipment(ctx, window.StartTime, window.EndTime)
	if err != nil {
		if errors.Is(err, meetingapi.ErrUnauthorized) {
			return nil, ErrUnauthorized
		}
		uc.logger.Error("CheckEquipment: failed to fetch equipment: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	catalog := make(map[string]domain.EquipmentAvailability, len(stock))
	for _, s := range stock {
		key := normalizeName(s.EquipmentName)
		if _, ok := catalog[key]; ok {
			uc.logger.Warn("CheckEquipment: duplicate equipment %q in backend response, keeping first", s.EquipmentName)
			continue
		}
		catalog[key] = domain.EquipmentAvailability{
			Name:        strings.TrimSpace(s.EquipmentName),
			Total:       s.TotalQuantity,
			Maintenance: s.MaintenanceCount,
			Booked:      s.BookedQuantity,
		}
	}

	// 3. Без списка проверяем весь каталог в порядке бэкенда
	items := req.Items
	if len(items) == 0 {
		items = make([]Item, 0, len(stock))
		for _, s := range stock {
			items = append(items, Item{Name: s.EquipmentName})
		}
	}

	// 4. Классификация
	resp := &Response{
		Start: window.StartTime,
		End:   window.EndTime,
		Items: make([]ItemResult, 0, len(items)),
		AllOK: true,
	}
	for _, item := range items {
		result := classify(item, catalog)
		if result.Status != domain.AvailabilityOK {
			resp.AllOK = false
		}
		resp.Items = append(resp.Items, result)
	}

	uc.logger.Info("CheckEquipment: checked %d items, allOK=%t", len(resp.Items), resp.AllOK)
	return resp, nil
}

// classify неизвестный тип считается недоступным
func classify(item Item, catalog map[string]domain.EquipmentAvailability) ItemResult {
	stock, ok := catalog[normalizeName(item.Name)]
	if !ok {
		return ItemResult{
			Name:      strings.TrimSpace(item.Name),
			Requested: item.Quantity,
			Status:    domain.AvailabilityUnavailable,
		}
	}

	available := stock.Available()
	return ItemResult{
		Name:        stock.Name,
		Requested:   item.Quantity,
		Total:       stock.Total,
		Maintenance: stock.Maintenance,
		Booked:      stock.Booked,
		Available:   available,
		Known:       true,
		Status:      domain.ClassifyAvailability(available, item.Quantity),
	}
}
