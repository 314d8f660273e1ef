package booking_intent

import (
	"time"

	bookMeeting "github.com/m04kA/SMC-MeetingBooking/internal/usecase/book_meeting"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// StartBookingRequest HTTP request model
type StartBookingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`              // "2025-11-04T15:00:00"
	End         string `json:"end"`                // "2025-11-04T16:00:00"
	Capacity    int    `json:"capacity,omitempty"` // количество участников
	RoomType    string `json:"roomType"`           // PHYSICAL или ONLINE
	RoomName    string `json:"roomName,omitempty"`
	PhysicalID  *int64 `json:"physicalId,omitempty"` // выбранная физическая комната
}

// StepBookingRequest HTTP request model для advance/run (тело необязательно)
type StepBookingRequest struct {
	PhysicalID *int64 `json:"physicalId,omitempty"`
}

// OrphanResponse ресурс, оставшийся на бэкенде
type OrphanResponse struct {
	ResourceType string `json:"resourceType"`
	ResourceID   int64  `json:"resourceId"`
	Reason       string `json:"reason"`
}

// IntentResponse HTTP response model
type IntentResponse struct {
	ID          string              `json:"id"`
	State       string              `json:"state"`
	NextStep    string              `json:"nextStep,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	Start       types.LocalDateTime `json:"start"`
	End         types.LocalDateTime `json:"end"`
	Capacity    int                 `json:"capacity,omitempty"`
	RoomType    string              `json:"roomType"`
	RoomName    string              `json:"roomName"`
	PhysicalID  *int64              `json:"physicalId,omitempty"`
	MeetingID   *int64              `json:"meetingId,omitempty"`
	RoomID      *int64              `json:"roomId,omitempty"`
	LastError   string              `json:"lastError,omitempty"`
	Orphans     []OrphanResponse    `json:"orphans,omitempty"`
	CreatedAt   string              `json:"createdAt"`
	UpdatedAt   string              `json:"updatedAt"`
}

// ErrorWithIntentResponse ошибка шага вместе с текущим состоянием бронирования
type ErrorWithIntentResponse struct {
	Error  string          `json:"error"`
	Code   string          `json:"code,omitempty"`
	Intent *IntentResponse `json:"intent,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *StartBookingRequest) ToUseCaseRequest(organizerID int64) *bookMeeting.StartRequest {
	return &bookMeeting.StartRequest{
		OrganizerID: organizerID,
		Title:       r.Title,
		Description: r.Description,
		Start:       r.Start,
		End:         r.End,
		Capacity:    r.Capacity,
		RoomType:    r.RoomType,
		RoomName:    r.RoomName,
		PhysicalID:  r.PhysicalID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookMeeting.Response) *IntentResponse {
	if resp == nil || resp.Intent == nil {
		return nil
	}
	intent := resp.Intent

	result := &IntentResponse{
		ID:          intent.ID,
		State:       string(intent.State),
		NextStep:    string(resp.NextStep),
		Title:       intent.Title,
		Description: intent.Description,
		Start:       intent.Start,
		End:         intent.End,
		Capacity:    intent.Capacity,
		RoomType:    string(intent.RoomType),
		RoomName:    intent.RoomName,
		PhysicalID:  intent.PhysicalID,
		MeetingID:   intent.MeetingID,
		RoomID:      intent.RoomID,
		LastError:   intent.LastError,
		CreatedAt:   intent.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   intent.UpdatedAt.Format(time.RFC3339),
	}
	for _, o := range resp.Orphans {
		result.Orphans = append(result.Orphans, OrphanResponse{
			ResourceType: string(o.ResourceType),
			ResourceID:   o.ResourceID,
			Reason:       string(o.Reason),
		})
	}
	return result
}
