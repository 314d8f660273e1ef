package check_equipment

import (
	checkEquipment "github.com/m04kA/SMC-MeetingBooking/internal/usecase/check_equipment"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// EquipmentItemRequest запрошенное оборудование
type EquipmentItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CheckEquipmentRequest HTTP request model
type CheckEquipmentRequest struct {
	Start string                 `json:"start"`
	End   string                 `json:"end"`
	Items []EquipmentItemRequest `json:"items,omitempty"`
}

// EquipmentItemResponse HTTP response model
type EquipmentItemResponse struct {
	Name        string `json:"name"`
	Requested   int    `json:"requested"`
	Total       int    `json:"total"`
	Maintenance int    `json:"maintenance"`
	Booked      int    `json:"booked"`
	Available   int    `json:"available"`
	Known       bool   `json:"known"`
	Status      string `json:"status"`
}

// CheckEquipmentResponse HTTP response model
type CheckEquipmentResponse struct {
	Start types.LocalDateTime     `json:"start"`
	End   types.LocalDateTime     `json:"end"`
	Items []EquipmentItemResponse `json:"items"`
	AllOK bool                    `json:"allOk"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckEquipmentRequest) ToUseCaseRequest() *checkEquipment.Request {
	items := make([]checkEquipment.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, checkEquipment.Item{Name: it.Name, Quantity: it.Quantity})
	}
	return &checkEquipment.Request{
		Start: r.Start,
		End:   r.End,
		Items: items,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkEquipment.Response) *CheckEquipmentResponse {
	items := make([]EquipmentItemResponse, 0, len(resp.Items))
	for _, it := range resp.Items {
		items = append(items, EquipmentItemResponse{
			Name:        it.Name,
			Requested:   it.Requested,
			Total:       it.Total,
			Maintenance: it.Maintenance,
			Booked:      it.Booked,
			Available:   it.Available,
			Known:       it.Known,
			Status:      string(it.Status),
		})
	}
	return &CheckEquipmentResponse{
		Start: resp.Start,
		End:   resp.End,
		Items: items,
		AllOK: resp.AllOK,
	}
}
