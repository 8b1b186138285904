package visits

import "errors"

var (
	// ErrVisitNotFound возвращается, когда визит не найден
	ErrVisitNotFound = errors.New("visit not found")

	// ErrCannotCancel возвращается, когда визит не может быть отменён
	ErrCannotCancel = errors.New("visit cannot be cancelled")

	// ErrCannotComplete возвращается, когда визит не может быть завершён
	ErrCannotComplete = errors.New("visit cannot be completed")

	// ErrCannotRecordAttendance возвращается, когда посещаемость уже нельзя зафиксировать
	ErrCannotRecordAttendance = errors.New("attendance cannot be recorded for this visit")

	// ErrUnknownVisitor возвращается, когда в посещаемости указан контакт не из визита
	ErrUnknownVisitor = errors.New("visitor is not attached to this visit")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
