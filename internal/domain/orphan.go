package domain

import "time"

// OrphanResourceType names the upstream entity left behind
type OrphanResourceType string

const (
	OrphanMeeting     OrphanResourceType = "MEETING"
	OrphanMeetingRoom OrphanResourceType = "MEETING_ROOM"
)

// OrphanReason explains why a resource was left behind
type OrphanReason string

const (
	OrphanReasonRoomCreationFailed OrphanReason = "room_creation_failed"
	OrphanReasonAssignmentFailed   OrphanReason = "room_assignment_failed"
	OrphanReasonCancelled          OrphanReason = "cancelled"
	OrphanReasonLateResponse       OrphanReason = "response_after_cancel"
)

// OrphanResource records an upstream resource that a partially completed booking left behind.
// The booking workflow never deletes created resources; this ledger makes them visible.
type OrphanResource struct {
	ID           int64
	IntentID     string
	OrganizerID  int64
	ResourceType OrphanResourceType
	ResourceID   int64
	Reason       OrphanReason
	Details      *string
	CreatedAt    time.Time
}
