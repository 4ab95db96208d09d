package delete_order

import "context"

// OrdersService интерфейс сервиса заказов
type OrdersService interface {
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
