package customers

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.CustomerProfile, error)
	GetAll(ctx context.Context) ([]*domain.CustomerProfile, error)
	Update(ctx context.Context, id string, name string, phone, email, address, notes *string) (*domain.CustomerProfile, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository интерфейс репозитория заказов (для агрегатов профиля)
type OrderRepository interface {
	List(ctx context.Context, filter domain.OrdersFilter) ([]*domain.Order, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
