package delete_customer

import "context"

// CustomersService интерфейс CRM сервиса
type CustomersService interface {
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
