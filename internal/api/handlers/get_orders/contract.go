package get_orders

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/service/orders/models"
)

// OrdersService интерфейс сервиса заказов
type OrdersService interface {
	List(ctx context.Context, req *models.ListOrdersRequest) (*models.OrderListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
