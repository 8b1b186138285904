package timeslot

import "errors"

var (
	// ErrTimeSlotNotFound возвращается, когда шаблон слота не найден
	ErrTimeSlotNotFound = errors.New("time slot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL-запроса
	ErrBuildQuery = errors.New("timeslot storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL-запроса
	ErrExecQuery = errors.New("timeslot storage: failed to execute query")

	// ErrScanRow возвращается при ошибке чтения строки результата
	ErrScanRow = errors.New("timeslot storage: failed to scan row")
)
