package create_order

import "errors"

var (
	// ErrUnknownMenuItem возвращается, когда позиция заказа отсутствует в меню
	ErrUnknownMenuItem = errors.New("create_order: unknown menu item")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_order: internal error")
)
