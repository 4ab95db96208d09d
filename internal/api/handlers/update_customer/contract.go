package update_customer

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/service/customers/models"
)

// CustomersService интерфейс CRM сервиса
type CustomersService interface {
	Update(ctx context.Context, id string, req *models.UpdateCustomerRequest) (*models.CustomerResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
