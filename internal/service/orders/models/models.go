package models

import (
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// Request модели

// ListOrdersRequest запрос на получение списка заказов
type ListOrdersRequest struct {
	Since        *time.Time `json:"since,omitempty"`        // Начало периода (опционально)
	Until        *time.Time `json:"until,omitempty"`        // Конец периода (опционально)
	CustomerName *string    `json:"customerName,omitempty"` // Поиск по имени клиента (опционально)
	Limit        int        `json:"limit,omitempty"`        // 0 = без ограничения
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListOrdersRequest) ToDomainFilter() domain.OrdersFilter {
	return domain.OrdersFilter{
		Since:        r.Since,
		Until:        r.Until,
		CustomerName: r.CustomerName,
		Limit:        r.Limit,
	}
}

// UpdateOrderRequest запрос на редактирование заказа
type UpdateOrderRequest struct {
	CustomerName string          `json:"customerName"`
	Items        []OrderItemEdit `json:"items"`
	Notes        *string         `json:"notes,omitempty"`
}

// OrderItemEdit редактируемая позиция заказа: клиент присылает только
// идентификатор пиццы и количество, цена и имя берутся из меню
type OrderItemEdit struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// Response модели

// OrderItemResponse позиция заказа в ответе
type OrderItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderResponse заказ в ответе API
type OrderResponse struct {
	ID             string              `json:"id"`
	CustomerName   string              `json:"customerName"`
	CustomerID     *string             `json:"customerId,omitempty"`
	TotalAmount    int64               `json:"totalAmount"`
	UnitCount      int                 `json:"unitCount"`
	Items          []OrderItemResponse `json:"items"`
	Address        *string             `json:"address,omitempty"`
	DeliveryMethod *string             `json:"deliveryMethod,omitempty"`
	DeliveryTime   *string             `json:"deliveryTime,omitempty"`
	PaymentMethod  *string             `json:"paymentMethod,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
	CustomerPhone  *string             `json:"customerPhone,omitempty"`
	CustomerEmail  *string             `json:"customerEmail,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// OrderListResponse список заказов
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// FromDomainOrder конвертирует domain заказ в response модель
func FromDomainOrder(o *domain.Order) *OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return &OrderResponse{
		ID:             o.ID,
		CustomerName:   o.CustomerName,
		CustomerID:     o.CustomerID,
		TotalAmount:    o.TotalAmount,
		UnitCount:      o.UnitCount(),
		Items:          items,
		Address:        o.Address,
		DeliveryMethod: o.DeliveryMethod,
		DeliveryTime:   o.DeliveryTime,
		PaymentMethod:  o.PaymentMethod,
		Notes:          o.Notes,
		CustomerPhone:  o.CustomerPhone,
		CustomerEmail:  o.CustomerEmail,
		CreatedAt:      o.CreatedAt,
	}
}

// FromDomainOrderList конвертирует список domain заказов
func FromDomainOrderList(orders []*domain.Order) *OrderListResponse {
	resp := &OrderListResponse{
		Orders: make([]OrderResponse, len(orders)),
		Total:  len(orders),
	}
	for i, o := range orders {
		resp.Orders[i] = *FromDomainOrder(o)
	}
	return resp
}
