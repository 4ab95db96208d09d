package models

import (
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// Request модели

// UpdateCustomerRequest запрос на редактирование профиля клиента
type UpdateCustomerRequest struct {
	Name    string  `json:"name"`
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// Response модели

// CustomerResponse профиль клиента с агрегатами по заказам
type CustomerResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Address        *string    `json:"address,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	TotalSpent     int64      `json:"totalSpent"`
	TotalOrders    int        `json:"totalOrders"`
	FavoritePizza  *string    `json:"favoritePizza,omitempty"`
	FirstOrderDate *time.Time `json:"firstOrderDate,omitempty"`
	LastOrderDate  *time.Time `json:"lastOrderDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// CustomerListResponse список профилей клиентов
type CustomerListResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int                `json:"total"`
}

// FromDomainCustomer конвертирует domain профиль в response модель
func FromDomainCustomer(c *domain.CustomerProfile) *CustomerResponse {
	return &CustomerResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		Notes:          c.Notes,
		TotalSpent:     c.TotalSpent,
		TotalOrders:    c.TotalOrders,
		FavoritePizza:  c.FavoritePizza,
		FirstOrderDate: c.FirstOrderDate,
		LastOrderDate:  c.LastOrderDate,
		CreatedAt:      c.CreatedAt,
	}
}

// FromDomainCustomerList конвертирует список domain профилей
func FromDomainCustomerList(customers []*domain.CustomerProfile) *CustomerListResponse {
	resp := &CustomerListResponse{
		Customers: make([]CustomerResponse, len(customers)),
		Total:     len(customers),
	}
	for i, c := range customers {
		resp.Customers[i] = *FromDomainCustomer(c)
	}
	return resp
}
