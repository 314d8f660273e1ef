package domain

// Business validation constants
const (
	MinRequestedCapacity     = 1
	MaxTitleLength           = 255
	MaxDescriptionLength     = 2000
	MaxRoomNameLength        = 255
	MaxCancellationReason    = 500
	MaxMeetingsPerDay        = 2 // enforced by the backend per organizer per day
	MaxRecurrenceOccurrences = 365
)

// Time format constants
const (
	DateTimeFormat = "2006-01-02T15:04:05" // local wall-clock time, no UTC offset
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
)
