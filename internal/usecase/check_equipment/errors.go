package check_equipment

import "errors"

var (
	// ErrInvalidTimeRange возвращается при некорректном окне времени
	ErrInvalidTimeRange = errors.New("check_equipment: invalid time range")

	// ErrInvalidInput возвращается при некорректном списке оборудования
	ErrInvalidInput = errors.New("check_equipment: invalid input data")

	// ErrUnauthorized возвращается, когда сессия недействительна
	ErrUnauthorized = errors.New("check_equipment: unauthorized")

	// ErrUpstream возвращается, когда бэкенд не вернул остатки
	ErrUpstream = errors.New("check_equipment: failed to fetch equipment")
)
