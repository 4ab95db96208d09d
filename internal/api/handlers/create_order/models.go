package create_order

import (
	"time"

	createOrder "github.com/labiga/LaBiga-OrderService/internal/usecase/create_order"
)

// OrderItemRequest позиция заказа в HTTP запросе: клиент присылает
// только ID пиццы и количество, цены считает сервер
type OrderItemRequest struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest HTTP request model
type CreateOrderRequest struct {
	CustomerName   string             `json:"customerName"`
	Items          []OrderItemRequest `json:"items"`
	Address        *string            `json:"address,omitempty"`
	DeliveryMethod *string            `json:"deliveryMethod,omitempty"`
	DeliveryTime   *string            `json:"deliveryTime,omitempty"`
	PaymentMethod  *string            `json:"paymentMethod,omitempty"`
	Notes          *string            `json:"notes,omitempty"`
	CustomerPhone  *string            `json:"customerPhone,omitempty"`
	CustomerEmail  *string            `json:"customerEmail,omitempty"`
}

// OrderItemResponse позиция заказа в HTTP ответе
type OrderItemResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderResponse HTTP response model
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customerName"`
	CustomerID   string              `json:"customerId"`
	TotalAmount  int64               `json:"totalAmount"`
	UnitCount    int                 `json:"unitCount"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    string              `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateOrderRequest) ToUseCaseRequest() *createOrder.Request {
	items := make([]createOrder.ItemSelection, len(r.Items))
	for i, item := range r.Items {
		items[i] = createOrder.ItemSelection{
			ID:       item.ID,
			Quantity: item.Quantity,
		}
	}

	return &createOrder.Request{
		CustomerName:   r.CustomerName,
		Items:          items,
		Address:        r.Address,
		DeliveryMethod: r.DeliveryMethod,
		DeliveryTime:   r.DeliveryTime,
		PaymentMethod:  r.PaymentMethod,
		Notes:          r.Notes,
		CustomerPhone:  r.CustomerPhone,
		CustomerEmail:  r.CustomerEmail,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createOrder.Response) *OrderResponse {
	items := make([]OrderItemResponse, len(resp.Items))
	for i, item := range resp.Items {
		items[i] = OrderItemResponse{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return &OrderResponse{
		ID:           resp.ID,
		CustomerName: resp.CustomerName,
		CustomerID:   resp.CustomerID,
		TotalAmount:  resp.TotalAmount,
		UnitCount:    resp.UnitCount,
		Items:        items,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
