package stockledger

import (
	"context"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/internal/infra/notify"
)

// OrderReader интерфейс репозитория заказов
type OrderReader interface {
	// SumUnitsSince суммирует пиццы по заказам, созданным начиная с момента
	SumUnitsSince(ctx context.Context, since time.Time) (int, error)
}

// InventoryReader интерфейс репозитория дневных лимитов
type InventoryReader interface {
	GetByDate(ctx context.Context, date string) (*domain.DailyInventory, error)
}

// Feed push-канал с событиями о новых заказах
type Feed interface {
	Events() <-chan notify.OrderCreatedEvent
	// Resync сигнализирует о возможном пропуске событий (переподключение)
	Resync() <-chan struct{}
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder опциональный сборщик метрик продаж
type MetricsRecorder interface {
	AddUnitsSold(source string, units int)
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
