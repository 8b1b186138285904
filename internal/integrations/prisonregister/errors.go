package prisonregister

import "errors"

var (
	// ErrPrisonNotFound возвращается, когда тюрьма с таким кодом не зарегистрирована
	ErrPrisonNotFound = errors.New("prison not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("prisonregister client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("prisonregister client: invalid response")
)
