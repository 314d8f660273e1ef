package check_equipment

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// Item запрошенное оборудование
type Item struct {
	Name     string // Название типа оборудования
	Quantity int    // Запрошенное количество
}

// Request модель запроса проверки оборудования
// Пустой Items - проверить весь каталог без запрошенного количества
type Request struct {
	Start string
	End   string
	Items []Item
}

// ItemResult результат проверки одного типа
type ItemResult struct {
	Name        string
	Requested   int
	Total       int
	Maintenance int
	Booked      int
	Available   int
	Known       bool // тип есть в каталоге бэкенда
	Status      domain.AvailabilityStatus
}

// Response модель ответа проверки оборудования
// Результат только информационный: оборудование не резервируется
type Response struct {
	Start types.LocalDateTime
	End   types.LocalDateTime
	Items []ItemResult
	AllOK bool
}
