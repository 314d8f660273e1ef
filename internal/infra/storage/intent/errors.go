package intent

import "errors"

var (
	// ErrIntentNotFound возвращается, когда бронирование не найдено или истек его срок жизни
	ErrIntentNotFound = errors.New("intent.store: intent not found")

	// ErrStepInProgress возвращается при попытке запустить шаг, пока предыдущий еще выполняется
	ErrStepInProgress = errors.New("intent.store: step already in progress")

	// ErrIntentExists возвращается при повторном создании бронирования с тем же ID
	ErrIntentExists = errors.New("intent.store: intent already exists")
)
