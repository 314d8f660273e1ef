package find_available_rooms

import "errors"

var (
	// ErrInvalidTimeRange возвращается при некорректном окне времени
	ErrInvalidTimeRange = errors.New("find_available_rooms: invalid time range")

	// ErrInvalidCapacity возвращается, когда запрошенная вместимость меньше 1
	ErrInvalidCapacity = errors.New("find_available_rooms: capacity must be at least 1")

	// ErrInvalidRoomType возвращается при неизвестном типе комнаты
	ErrInvalidRoomType = errors.New("find_available_rooms: invalid room type")

	// ErrOnlineRoomsUnsupported возвращается для онлайн-комнат: поиск доступности для них не реализован
	ErrOnlineRoomsUnsupported = errors.New("find_available_rooms: online room availability is not supported")

	// ErrUnauthorized возвращается, когда сессия недействительна
	ErrUnauthorized = errors.New("find_available_rooms: unauthorized")

	// ErrUpstream возвращается, когда бэкенд не смог вернуть список комнат
	ErrUpstream = errors.New("find_available_rooms: failed to fetch rooms")
)
