package domain

import "github.com/m04kA/SMC-MeetingBooking/pkg/types"

// MeetingStatus represents the server-owned lifecycle status of a meeting
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "SCHEDULED"
	MeetingOngoing   MeetingStatus = "ONGOING"
	MeetingCompleted MeetingStatus = "COMPLETED"
	MeetingCancelled MeetingStatus = "CANCELLED"
)

// Meeting represents a scheduled meeting owned by the backend
type Meeting struct {
	ID          int64
	Title       string
	Description string
	StartTime   types.LocalDateTime
	EndTime     types.LocalDateTime
	OrganizerID int64
	Status      MeetingStatus
	RoomID      *int64
	Recurrence  *RecurrenceSpec
}

// IsValid reports whether the meeting status is one of the known values
func (s MeetingStatus) IsValid() bool {
	switch s {
	case MeetingScheduled, MeetingOngoing, MeetingCompleted, MeetingCancelled:
		return true
	}
	return false
}

// CanBeCancelled returns true if the client may request cancellation
func (m *Meeting) CanBeCancelled() bool {
	return m.Status == MeetingScheduled || m.Status == MeetingOngoing
}
