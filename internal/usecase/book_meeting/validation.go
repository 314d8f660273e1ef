package book_meeting

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
)

// draft проверенные данные для нового бронирования
type draft struct {
	title       string
	description string
	window      domain.TimeRangeResult
	roomType    domain.RoomType
	roomName    string
}

// validateStartRequest проверяет данные до любого сетевого вызова
func validateStartRequest(req *StartRequest, loc *time.Location) (*draft, error) {
	if req.OrganizerID <= 0 {
		return nil, fmt.Errorf("%w: organizer is required", ErrInvalidInput)
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return nil, fmt.Errorf("%w: title is longer than %d characters", ErrInvalidInput, domain.MaxTitleLength)
	}

	description := strings.TrimSpace(req.Description)
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxDescriptionLength)
	}

	window := domain.ValidateTimeRange(req.Start, req.End, loc)
	if !window.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeRange, window.Error.Error())
	}

	if req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	roomType := domain.RoomType(strings.ToUpper(strings.TrimSpace(req.RoomType)))
	if roomType == "" {
		roomType = domain.RoomTypePhysical
	}
	if !roomType.IsValid() {
		return nil, fmt.Errorf("%w: unknown room type %q", ErrInvalidInput, req.RoomType)
	}

	if req.PhysicalID != nil {
		if roomType != domain.RoomTypePhysical {
			return nil, fmt.Errorf("%w: physical room can only be selected for PHYSICAL type", ErrInvalidInput)
		}
		if *req.PhysicalID <= 0 {
			return nil, fmt.Errorf("%w: invalid physical room id", ErrInvalidInput)
		}
	}

	roomName := strings.TrimSpace(req.RoomName)
	if roomName == "" {
		roomName = title
	}
	if utf8.RuneCountInString(roomName) > domain.MaxRoomNameLength {
		return nil, fmt.Errorf("%w: room name is longer than %d characters", ErrInvalidInput, domain.MaxRoomNameLength)
	}

	return &draft{
		title:       title,
		description: description,
		window:      window,
		roomType:    roomType,
		roomName:    roomName,
	}, nil
}

// validateStep проверяет, что шаг можно выполнить из текущего состояния
// Шаг N+1 никогда не выполняется без успешного шага N
func validateStep(intent *domain.BookingIntent, req *StepRequest, step domain.BookingStep) error {
	if intent.OrganizerID != req.OrganizerID {
		return ErrForbidden
	}
	if intent.State == domain.StateAborted {
		return ErrIntentAborted
	}
	if intent.State != step.RequiredState() || intent.NextStep() != step {
		return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, step, intent.State)
	}
	if step == domain.StepAssignRoom {
		if req.PhysicalID != nil && *req.PhysicalID <= 0 {
			return fmt.Errorf("%w: invalid physical room id", ErrInvalidInput)
		}
		if err := requirePhysicalRoom(intent, req); err != nil {
			return err
		}
	}
	return nil
}

// requirePhysicalRoom PHYSICAL бронирование нельзя завершить без физической комнаты
func requirePhysicalRoom(intent *domain.BookingIntent, req *StepRequest) error {
	if intent.RoomType == domain.RoomTypePhysical && req.PhysicalID == nil && intent.PhysicalID == nil {
		return ErrPhysicalRoomRequired
	}
	return nil
}
