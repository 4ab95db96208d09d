package get_inventory

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/service/inventory/models"
)

// InventoryService интерфейс сервиса лимитов
type InventoryService interface {
	GetByDate(ctx context.Context, date string) (*models.InventoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
