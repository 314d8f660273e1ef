package orphan

import "errors"

var (
	// ErrAlreadyRecorded возвращается, когда ресурс уже есть в журнале
	ErrAlreadyRecorded = errors.New("orphan.repository: resource already recorded")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("orphan.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("orphan.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("orphan.repository: failed to scan row")
)
