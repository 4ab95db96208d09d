package notify

// OrderCreatedEvent уведомление о новом заказе из notify-канала
// Формат payload должен совпадать с тем, что шлет order.Repository
type OrderCreatedEvent struct {
	OrderID string `json:"order_id"`
	Units   int    `json:"units"`
}
