package find_available_rooms

import (
	"github.com/m04kA/SMC-MeetingBooking/internal/domain"
	"github.com/m04kA/SMC-MeetingBooking/pkg/types"
)

// Request модель запроса поиска свободных комнат
type Request struct {
	Start    string // Начало окна (локальное время)
	End      string // Конец окна (локальное время)
	Capacity int    // Количество участников
	RoomType string // PHYSICAL или ONLINE
}

// Response модель ответа со свободными комнатами
type Response struct {
	Start   types.LocalDateTime   // Нормализованное начало окна
	End     types.LocalDateTime   // Нормализованный конец окна
	Rooms   []domain.PhysicalRoom // Комнаты в порядке бэкенда
	NoRooms bool                  // Подходящих комнат нет (это не ошибка)
}
