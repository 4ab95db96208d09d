package create_order

import (
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// ItemSelection выбранная позиция заказа
type ItemSelection struct {
	ID       string // ID пиццы из меню
	Quantity int    // Количество
}

// Request модель запроса на создание заказа
type Request struct {
	CustomerName   string          // Имя клиента
	Items          []ItemSelection // Выбранные позиции
	Address        *string         // Адрес доставки (опционально)
	DeliveryMethod *string         // Способ получения: delivery / pickup (опционально)
	DeliveryTime   *string         // Желаемое время (опционально)
	PaymentMethod  *string         // Способ оплаты (опционально)
	Notes          *string         // Комментарий к заказу (опционально)
	CustomerPhone  *string         // Телефон (опционально)
	CustomerEmail  *string         // Email (опционально)
}

// Response модель ответа с созданным заказом
type Response struct {
	ID           string             // ID созданного заказа
	CustomerName string             // Имя клиента
	CustomerID   string             // ID профиля клиента (создан или найден)
	TotalAmount  int64              // Пересчитанная на сервере сумма в CLP
	UnitCount    int                // Всего пицц в заказе
	Items        []domain.OrderItem // Позиции с серверными ценами
	CreatedAt    time.Time          // Время создания
}
