package meetingapi

import "github.com/m04kA/SMC-MeetingBooking/pkg/types"

// InitMeetingRequest тело POST /meetings/init
type InitMeetingRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	StartTime   types.LocalDateTime `json:"startTime"`
	EndTime     types.LocalDateTime `json:"endTime"`
	OrganizerID int64               `json:"organizerId"`
}

// InitMeetingResponse ответ POST /meetings/init
// Разные версии бэкенда возвращают meetingId или id
type InitMeetingResponse struct {
	MeetingID int64 `json:"meetingId"`
	ID        int64 `json:"id"`
}

// Identifier возвращает идентификатор созданной встречи
func (r *InitMeetingResponse) Identifier() int64 {
	if r.MeetingID != 0 {
		return r.MeetingID
	}
	return r.ID
}

// CreateMeetingRoomRequest тело POST /meeting-rooms
type CreateMeetingRoomRequest struct {
	MeetingID int64  `json:"meetingId"`
	Type      string `json:"type"`
	Name      string `json:"name"`
}

// MeetingRoom модель комнаты встречи из бэкенда
type MeetingRoom struct {
	ID         int64  `json:"id"`
	RoomID     int64  `json:"roomId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Status     string `json:"status"`
	MeetingID  *int64 `json:"meetingId,omitempty"`
	PhysicalID *int64 `json:"physicalId,omitempty"`
	OnlineID   *int64 `json:"onlineId,omitempty"`
}

// Identifier возвращает идентификатор комнаты (id или roomId)
func (r *MeetingRoom) Identifier() int64 {
	if r.ID != 0 {
		return r.ID
	}
	return r.RoomID
}

// FilterAvailableRequest тело POST /physical-rooms/filter-available
type FilterAvailableRequest struct {
	StartTime types.LocalDateTime `json:"startTime"`
	EndTime   types.LocalDateTime `json:"endTime"`
	Capacity  int                 `json:"capacity"`
}

// PhysicalRoom модель физической комнаты из бэкенда
type PhysicalRoom struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Location  string   `json:"location"`
	Equipment []string `json:"equipment"`
	Status    string   `json:"status"`
}

// AssignPhysicalRoomRequest тело POST /physical-rooms/assign
type AssignPhysicalRoomRequest struct {
	RoomID     int64 `json:"roomId"`
	PhysicalID int64 `json:"physicalId"`
}

// UpdateMeetingRequest тело PUT /meetings/{id}
// Используется для установки повторения; остальные поля бэкенд не меняет, если они не переданы
type UpdateMeetingRequest struct {
	RecurrenceType  string `json:"recurrenceType"`
	RecurrenceUntil string `json:"recurrenceUntil"`
	MaxOccurrences  *int   `json:"maxOccurrences,omitempty"`
}

// Meeting модель встречи из бэкенда
type Meeting struct {
	ID              int64               `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	StartTime       types.LocalDateTime `json:"startTime"`
	EndTime         types.LocalDateTime `json:"endTime"`
	OrganizerID     int64               `json:"organizerId"`
	Status          string              `json:"status"`
	RoomID          *int64              `json:"roomId,omitempty"`
	RecurrenceType  *string             `json:"recurrenceType,omitempty"`
	RecurrenceUntil *string             `json:"recurrenceUntil,omitempty"`
	MaxOccurrences  *int                `json:"maxOccurrences,omitempty"`
}

// CancelMeetingRequest тело POST /meetings/{id}/cancel
type CancelMeetingRequest struct {
	Reason string `json:"reason"`
}

// EquipmentAvailability модель остатка оборудования на окно времени
type EquipmentAvailability struct {
	EquipmentID      int64  `json:"equipmentId"`
	EquipmentName    string `json:"equipmentName"`
	TotalQuantity    int    `json:"totalQuantity"`
	MaintenanceCount int    `json:"maintenanceCount"`
	BookedQuantity   int    `json:"bookedQuantity"`
}

// ErrorResponse модель ошибки от бэкенда
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
