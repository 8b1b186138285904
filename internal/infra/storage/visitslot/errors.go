package visitslot

import "errors"

var (
	// ErrVisitSlotNotFound возвращается, когда слот не найден
	ErrVisitSlotNotFound = errors.New("visit slot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL-запроса
	ErrBuildQuery = errors.New("visitslot storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL-запроса
	ErrExecQuery = errors.New("visitslot storage: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("visitslot storage: failed to scan row")
)
