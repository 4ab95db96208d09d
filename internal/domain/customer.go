package domain

import (
	"strings"
	"time"
)

// CustomerProfile represents an aggregated CRM customer profile
type CustomerProfile struct {
	ID        string
	Name      string
	Phone     *string
	Email     *string
	Address   *string
	Notes     *string
	CreatedAt time.Time

	// Агрегаты, пересчитываемые по заказам
	TotalSpent     int64
	TotalOrders    int
	FavoritePizza  *string
	FirstOrderDate *time.Time
	LastOrderDate  *time.Time
}

// minPhoneLength минимальная длина телефона, чтобы считать его идентификатором
// (отсекает мусорные значения вида "9" из старых заказов)
const minPhoneLength = 6

// CustomerIdentityKey возвращает ключ дедупликации клиента.
// Телефон имеет приоритет над именем: заказы с одинаковым телефоном - один
// клиент, даже если имя написано по-разному. Без телефона ключом служит
// нормализованное имя (trim + lowercase).
func CustomerIdentityKey(name string, phone *string) string {
	if phone != nil {
		p := strings.TrimSpace(*phone)
		if len(p) >= minPhoneLength {
			return p
		}
	}
	return strings.ToLower(strings.TrimSpace(name))
}
