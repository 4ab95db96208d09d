package inventory

import "errors"

var (
	// ErrInventoryNotFound возвращается, когда лимит на дату не задан
	ErrInventoryNotFound = errors.New("inventory not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
