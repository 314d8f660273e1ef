package domain

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// BookingState is the state of the multi-step booking workflow
type BookingState string

const (
	StateDraft          BookingState = "DRAFT"
	StateMeetingCreated BookingState = "MEETING_CREATED"
	StateRoomCreated    BookingState = "ROOM_CREATED"
	StateRoomAssigned   BookingState = "ROOM_ASSIGNED" // terminal success
	StateAborted        BookingState = "ABORTED"
)

// BookingStep is a single network round-trip of the workflow
type BookingStep string

const (
	StepNone          BookingStep = ""
	StepCreateMeeting BookingStep = "create_meeting"
	StepCreateRoom    BookingStep = "create_room"
	StepAssignRoom    BookingStep = "assign_room"
)

// IsTerminal returns true for states that accept no further steps
func (s BookingState) IsTerminal() bool {
	return s == StateRoomAssigned || s == StateAborted
}

// BookingIntent is the ephemeral state carried across the sequential booking calls.
// It lives only for the organizer's session and is never persisted.
type BookingIntent struct {
	ID          string
	OrganizerID int64
	State       BookingState

	// Draft data captured when the flow starts
	Title       string
	Description string
	Start       types.LocalDateTime
	End         types.LocalDateTime
	Capacity    int
	RoomType    RoomType
	RoomName    string
	PhysicalID  *int64

	// Identifiers carried forward between steps
	MeetingID *int64
	RoomID    *int64

	// Idempotency keys reused on every retry of the same step
	RoomIdempotencyKey   string
	AssignIdempotencyKey string

	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextStep returns the step that moves the intent forward, or StepNone for terminal states
func (b *BookingIntent) NextStep() BookingStep {
	switch b.State {
	case StateDraft:
		return StepCreateMeeting
	case StateMeetingCreated:
		return StepCreateRoom
	case StateRoomCreated:
		if b.RoomType == RoomTypePhysical {
			return StepAssignRoom
		}
		return StepNone
	default:
		return StepNone
	}
}

// RequiredState returns the state a step must start from
func (s BookingStep) RequiredState() BookingState {
	switch s {
	case StepCreateMeeting:
		return StateDraft
	case StepCreateRoom:
		return StateMeetingCreated
	case StepAssignRoom:
		return StateRoomCreated
	default:
		return ""
	}
}

// Clone returns a deep copy safe to hand out of the intent store
func (b *BookingIntent) Clone() *BookingIntent {
	if b == nil {
		return nil
	}
	c := *b
	c.PhysicalID = cloneInt64(b.PhysicalID)
	c.MeetingID = cloneInt64(b.MeetingID)
	c.RoomID = cloneInt64(b.RoomID)
	return &c
}

func cloneInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
