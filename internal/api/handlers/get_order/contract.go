package get_order

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/service/orders/models"
)

// OrdersService интерфейс сервиса заказов
type OrdersService interface {
	GetByID(ctx context.Context, id string) (*models.OrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
