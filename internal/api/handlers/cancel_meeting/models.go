package cancel_meeting

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/service/meetings/models"
)

// CancelMeetingRequest HTTP request model
type CancelMeetingRequest struct {
	Reason string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelMeetingRequest) ToServiceRequest(meetingID int64) *models.CancelMeetingRequest {
	return &models.CancelMeetingRequest{
		MeetingID: meetingID,
		Reason:    r.Reason,
	}
}
