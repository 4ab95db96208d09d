package domain

import "time"

// OrderItem позиция заказа (хранится в jsonb колонке items)
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // цена в CLP
	Quantity int    `json:"quantity"`
}

// Order represents a customer order in the system
type Order struct {
	ID           string
	CustomerName string
	CustomerID   *string // FK на профиль клиента (может отсутствовать у старых заказов)
	TotalAmount  int64   // сумма в CLP
	Items        []OrderItem

	Address        *string
	DeliveryMethod *string
	DeliveryTime   *string
	PaymentMethod  *string
	Notes          *string
	CustomerPhone  *string
	CustomerEmail  *string

	CreatedAt time.Time
}

// UnitCount returns the total number of pizzas in the order
func (o *Order) UnitCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

// OrdersFilter фильтр для получения списка заказов
type OrdersFilter struct {
	Since        *time.Time // Начало периода (опционально)
	Until        *time.Time // Конец периода (опционально)
	CustomerName *string    // Поиск по имени клиента (опционально, подстрока без учета регистра)
	Limit        int        // 0 = без ограничения
}
