package domain

// ShopStatus represents the derived availability state of the shop
type ShopStatus string

const (
	StatusOpen        ShopStatus = "open"
	StatusClosed      ShopStatus = "closed"
	StatusOpeningSoon ShopStatus = "opening-soon"
	StatusClosingSoon ShopStatus = "closing-soon"
	StatusSoldOut     ShopStatus = "sold-out"
)

// AllStatuses список всех состояний (для метрик и валидации)
var AllStatuses = []ShopStatus{
	StatusOpen,
	StatusClosed,
	StatusOpeningSoon,
	StatusClosingSoon,
	StatusSoldOut,
}

// CallToAction кнопка действия, привязанная к состоянию
type CallToAction struct {
	Label string
	Link  string
}

// AvailabilityState полное состояние магазина для отображения
// Инвариант: в каждый момент активно ровно одно состояние;
// sold-out вытесняет любое состояние, выведенное из расписания
type AvailabilityState struct {
	Status  ShopStatus
	Label   string
	Subtext string
	Color   string // цветовой токен для бейджа: green/red/yellow/orange/purple
	CTA     *CallToAction
}
