package schedule

import "errors"

var (
	// ErrPrisonNotFound возвращается, когда тюрьма не найдена в реестре
	ErrPrisonNotFound = errors.New("prison not found")

	// ErrPrisonInactive возвращается, когда тюрьма выведена из эксплуатации
	ErrPrisonInactive = errors.New("prison is not active")

	// ErrTimeSlotNotFound возвращается, когда временной слот не найден
	ErrTimeSlotNotFound = errors.New("time slot not found")

	// ErrVisitSlotNotFound возвращается, когда слот визита не найден
	ErrVisitSlotNotFound = errors.New("visit slot not found")

	// ErrTimeSlotInUse возвращается при удалении временного слота со слотами визитов
	ErrTimeSlotInUse = errors.New("time slot has visit slots")

	// ErrVisitSlotInUse возвращается при удалении слота визитов с визитами
	ErrVisitSlotInUse = errors.New("visit slot has visits")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
