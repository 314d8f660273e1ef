package set_recurrence

import (
	setRecurrence "github.com/m04kA/SMC-MeetingBooking/internal/usecase/set_recurrence"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// SetRecurrenceRequest HTTP request model
type SetRecurrenceRequest struct {
	RecurrenceType  string `json:"recurrenceType"`  // DAILY, WEEKLY, MONTHLY
	RecurrenceUntil string `json:"recurrenceUntil"` // "2025-12-31"
	MaxOccurrences  *int   `json:"maxOccurrences,omitempty"`
	MeetingStart    string `json:"meetingStart,omitempty"` // "2025-11-04T15:00:00", для проверки recurrenceUntil
}

// RecurrenceResponse HTTP response model
type RecurrenceResponse struct {
	Type           string `json:"recurrenceType"`
	Until          string `json:"recurrenceUntil"`
	MaxOccurrences *int   `json:"maxOccurrences,omitempty"`
}

// MeetingResponse HTTP response model
type MeetingResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title,omitempty"`
	StartTime   types.LocalDateTime `json:"startTime"`
	EndTime     types.LocalDateTime `json:"endTime"`
	Status      string              `json:"status,omitempty"`
	OrganizerID int64               `json:"organizerId,omitempty"`
	Recurrence  *RecurrenceResponse `json:"recurrence,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetRecurrenceRequest) ToUseCaseRequest(meetingID int64) *setRecurrence.Request {
	return &setRecurrence.Request{
		MeetingID:      meetingID,
		Type:           r.RecurrenceType,
		Until:          r.RecurrenceUntil,
		MaxOccurrences: r.MaxOccurrences,
		MeetingStart:   r.MeetingStart,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setRecurrence.Response) *MeetingResponse {
	m := resp.Meeting
	result := &MeetingResponse{
		ID:          m.ID,
		Title:       m.Title,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      string(m.Status),
		OrganizerID: m.OrganizerID,
	}
	if m.Recurrence != nil {
		result.Recurrence = &RecurrenceResponse{
			Type:           string(m.Recurrence.Type),
			Until:          m.Recurrence.Until,
			MaxOccurrences: m.Recurrence.MaxOccurrences,
		}
	}
	return result
}
