package upsert_inventory

import (
	"context"

	"github.com/labiga/LaBiga-OrderService/internal/service/inventory/models"
)

// InventoryService интерфейс сервиса лимитов
type InventoryService interface {
	Upsert(ctx context.Context, date string, req *models.UpsertInventoryRequest) (*models.InventoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
