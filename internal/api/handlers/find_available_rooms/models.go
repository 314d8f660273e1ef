package find_available_rooms

import (
	findAvailableRooms "github.com/m04kA/SMC-MeetingBooking/internal/usecase/find_available_rooms"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

const (
	stateAvailable = "AVAILABLE"
	stateNoRooms   = "NO_ROOMS"
)

// FindAvailableRoomsRequest HTTP request model
type FindAvailableRoomsRequest struct {
	Start    string `json:"start"`    // "2025-11-04T15:00:00"
	End      string `json:"end"`      // "2025-11-04T16:00:00"
	Capacity int    `json:"capacity"` // количество участников
	RoomType string `json:"roomType"` // PHYSICAL (по умолчанию) или ONLINE
}

// RoomResponse HTTP response model
type RoomResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Capacity  int      `json:"capacity"`
	Location  string   `json:"location,omitempty"`
	Equipment []string `json:"equipment,omitempty"`
	Status    string   `json:"status,omitempty"`
}

// AvailableRoomsResponse HTTP response model
type AvailableRoomsResponse struct {
	State string              `json:"state"` // AVAILABLE или NO_ROOMS
	Start types.LocalDateTime `json:"start"`
	End   types.LocalDateTime `json:"end"`
	Rooms []RoomResponse      `json:"rooms"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *FindAvailableRoomsRequest) ToUseCaseRequest() *findAvailableRooms.Request {
	return &findAvailableRooms.Request{
		Start:    r.Start,
		End:      r.End,
		Capacity: r.Capacity,
		RoomType: r.RoomType,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findAvailableRooms.Response) *AvailableRoomsResponse {
	result := &AvailableRoomsResponse{
		State: stateAvailable,
		Start: resp.Start,
		End:   resp.End,
		Rooms: make([]RoomResponse, 0, len(resp.Rooms)),
	}
	if resp.NoRooms {
		result.State = stateNoRooms
	}
	for _, room := range resp.Rooms {
		result.Rooms = append(result.Rooms, RoomResponse{
			ID:        room.ID,
			Name:      room.Name,
			Capacity:  room.Capacity,
			Location:  room.Location,
			Equipment: room.Equipment,
			Status:    string(room.Status),
		})
	}
	return result
}
