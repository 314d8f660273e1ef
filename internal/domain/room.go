package domain

// RoomType distinguishes rooms bound to a location from virtual ones
type RoomType string

const (
	RoomTypePhysical RoomType = "PHYSICAL"
	RoomTypeOnline   RoomType = "ONLINE"
)

// RoomStatus represents availability of a meeting room
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomUnavailable RoomStatus = "UNAVAILABLE"
)

// IsValid reports whether the room type is supported
func (t RoomType) IsValid() bool {
	return t == RoomTypePhysical || t == RoomTypeOnline
}

// MeetingRoom is a room shell created for a meeting and later bound to a concrete resource
type MeetingRoom struct {
	ID         int64
	Name       string
	Type       RoomType
	Status     RoomStatus
	MeetingID  *int64
	PhysicalID *int64
	OnlineID   *int64
}

// PhysicalRoom is a location resource with a fixed capacity
type PhysicalRoom struct {
	ID        int64
	Name      string
	Capacity  int
	Location  string
	Equipment []string
	Status    RoomStatus
}

// Fits returns true if the room can host the requested number of participants
func (r *PhysicalRoom) Fits(participants int) bool {
	return r.Capacity >= participants
}

// FilterByCapacity keeps rooms with capacity >= participants, preserving order
func FilterByCapacity(rooms []PhysicalRoom, participants int) []PhysicalRoom {
	result := make([]PhysicalRoom, 0, len(rooms))
	for _, room := range rooms {
		if room.Fits(participants) {
			result = append(result, room)
		}
	}
	return result
}
