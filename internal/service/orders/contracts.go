package orders

import (
	"context"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
	Update(ctx context.Context, id string, customerName string, items []domain.OrderItem, totalAmount int64, notes *string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	SumUnitsSince(ctx context.Context, since time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
