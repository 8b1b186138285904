package prisonregister

// Prison модель тюрьмы из prison-register
type Prison struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ErrorResponse модель ошибки от prison-register
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
