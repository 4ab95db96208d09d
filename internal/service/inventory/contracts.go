package inventory

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// InventoryRepository интерфейс репозитория дневных лимитов
type InventoryRepository interface {
	GetByDate(ctx context.Context, date string) (*domain.DailyInventory, error)
	Upsert(ctx context.Context, date string, totalDoughs int) (*domain.DailyInventory, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
