package create_order

import (
	"context"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	FindByIdentity(ctx context.Context, name string, phone *string) (*domain.CustomerProfile, error)
	Create(ctx context.Context, customer *domain.CustomerProfile) (*domain.CustomerProfile, error)
	RecordOrder(ctx context.Context, id string, amount int64, orderedAt time.Time, address, phone, email *string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
