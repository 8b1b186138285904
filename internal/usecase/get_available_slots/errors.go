package get_available_slots

import "errors"

var (
	// ErrFromDateInPast возвращается, когда fromDate раньше сегодняшней даты.
	// Текст является частью контракта API.
	ErrFromDateInPast = errors.New("The from date must be on or after today's date")

	// ErrToDateBeforeFromDate возвращается, когда toDate раньше fromDate.
	// Текст является частью контракта API.
	ErrToDateBeforeFromDate = errors.New("The to date must be on or after the from date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
