package models

import (
	"time"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// Request модели

// CancelMeetingRequest запрос на отмену встречи
type CancelMeetingRequest struct {
	MeetingID int64  `json:"meetingId"`
	Reason    string `json:"reason"`
}

// ListOrphansRequest запрос журнала "осиротевших" ресурсов
type ListOrphansRequest struct {
	UserID  int64  `json:"userId"`
	IsAdmin bool   `json:"isAdmin"` // администратор видит записи всех организаторов
	Limit   uint64 `json:"limit,omitempty"`
}

// Response модели

// OrphanResponse запись журнала
type OrphanResponse struct {
	ID           int64     `json:"id"`
	IntentID     string    `json:"intentId"`
	OrganizerID  int64     `json:"organizerId"`
	ResourceType string    `json:"resourceType"`
	ResourceID   int64     `json:"resourceId"`
	Reason       string    `json:"reason"`
	Details      *string   `json:"details,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OrphanListResponse список записей журнала
type OrphanListResponse struct {
	Orphans []OrphanResponse `json:"orphans"`
	Total   int              `json:"total"`
}

// FromDomainOrphanList конвертирует записи журнала в ответ
func FromDomainOrphanList(orphans []*domain.OrphanResource) *OrphanListResponse {
	result := &OrphanListResponse{
		Orphans: make([]OrphanResponse, 0, len(orphans)),
		Total:   len(orphans),
	}
	for _, o := range orphans {
		result.Orphans = append(result.Orphans, OrphanResponse{
			ID:           o.ID,
			IntentID:     o.IntentID,
			OrganizerID:  o.OrganizerID,
			ResourceType: string(o.ResourceType),
			ResourceID:   o.ResourceID,
			Reason:       string(o.Reason),
			Details:      o.Details,
			CreatedAt:    o.CreatedAt,
		})
	}
	return result
}
