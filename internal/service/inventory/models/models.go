package models

import (
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// Request модели

// UpsertInventoryRequest запрос на установку лимита масс на дату
type UpsertInventoryRequest struct {
	TotalDoughs int `json:"totalDoughs"`
}

// Response модели

// InventoryResponse дневной лимит масс
type InventoryResponse struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	TotalDoughs int       `json:"totalDoughs"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromDomainInventory конвертирует domain лимит в response модель
func FromDomainInventory(inv *domain.DailyInventory) *InventoryResponse {
	return &InventoryResponse{
		ID:          inv.ID,
		Date:        inv.Date,
		TotalDoughs: inv.TotalDoughs,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
}
