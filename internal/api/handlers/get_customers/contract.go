package get_customers

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/service/customers/models"
)

// CustomersService интерфейс CRM сервиса
type CustomersService interface {
	GetAll(ctx context.Context) (*models.CustomerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
