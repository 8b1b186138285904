package book_visit

import "errors"

var (
	// ErrVisitSlotNotFound возвращается, когда слот визита не найден
	// или не принадлежит указанной тюрьме
	ErrVisitSlotNotFound = errors.New("book_visit: visit slot not found")

	// ErrVisitDateInPast возвращается, когда дата визита раньше сегодняшней
	ErrVisitDateInPast = errors.New("book_visit: visit date must be on or after today's date")

	// ErrSlotNotAvailableOnDate возвращается, когда слот не действует
	// на указанную дату (день недели или окно действия не совпадают,
	// либо слот на сегодня уже закончился)
	ErrSlotNotAvailableOnDate = errors.New("book_visit: slot is not available on this date")

	// ErrVideoNotSupported возвращается при попытке забронировать
	// видеовизит в слот без видеосессий
	ErrVideoNotSupported = errors.New("book_visit: slot does not support video sessions")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_visit: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_visit: internal error")
)
