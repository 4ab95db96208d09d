package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMenuItem возвращается, когда позиция отсутствует в меню
	ErrUnknownMenuItem = errors.New("unknown menu item")

	// ErrInvalidQuantity возвращается при недопустимом количестве позиции
	ErrInvalidQuantity = errors.New("invalid item quantity")
)

// MenuItem позиция меню
type MenuItem struct {
	ID          string
	Name        string
	Description string
	Price       int64 // цена в CLP
}

// menu статичное меню пиццерии. Сервис - источник правды по ценам:
// сумма заказа всегда пересчитывается по этим значениям, а не по тому,
// что прислал клиент.
var menu = []MenuItem{
	{
		ID:          "margarita",
		Name:        "Margherita Verace",
		Description: "Pomodoro San Marzano, Fior di Latte, Albahaca, Aceite de Oliva.",
		Price:       8990,
	},
	{
		ID:          "bomba",
		Name:        "Bomba all'aglio",
		Description: "Base cremosa especial (ajo confitado, quesos suaves, parmesano y un toque de mantequilla), terminada con Fior di Latte, lluvia de cebollín fresco y orégano.",
		Price:       9990,
	},
	{
		ID:          "diavola",
		Name:        "Diavola",
		Description: "Intensa base de Pomodoro y Mozzarella, cubierta con Salame picante y terminada con el frescor de hojas de albahaca.",
		Price:       10990,
	},
	{
		ID:          "prosciutto",
		Name:        "Prosciutto e Rucola",
		Description: "Fior di Latte, Prosciutto Crudo, Rúcula fresca, Parmigiano Reggiano.",
		Price:       11990,
	},
}

// Menu returns the static menu
func Menu() []MenuItem {
	items := make([]MenuItem, len(menu))
	copy(items, menu)
	return items
}

// MenuItemByID ищет позицию меню по ID
func MenuItemByID(id string) (MenuItem, bool) {
	for _, item := range menu {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// OrderItemSelection выбор позиции при оформлении или редактировании заказа:
// клиент указывает только ID пиццы и количество
type OrderItemSelection struct {
	ID       string
	Quantity int
}

// ResolveOrderItems проверяет выбранные позиции по меню и собирает позиции
// заказа с серверными ценами и названиями. Возвращает пересчитанную сумму
// в CLP - присланному клиентом тоталу доверять нельзя
func ResolveOrderItems(selections []OrderItemSelection) ([]OrderItem, int64, error) {
	items := make([]OrderItem, 0, len(selections))
	var total int64

	for _, sel := range selections {
		menuItem, ok := MenuItemByID(sel.ID)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrUnknownMenuItem, sel.ID)
		}
		if sel.Quantity < 1 || sel.Quantity > MaxItemQuantity {
			return nil, 0, fmt.Errorf("%w: quantity for %s must be between 1 and %d",
				ErrInvalidQuantity, sel.ID, MaxItemQuantity)
		}

		items = append(items, OrderItem{
			ID:       menuItem.ID,
			Name:     menuItem.Name,
			Price:    menuItem.Price,
			Quantity: sel.Quantity,
		})
		total += menuItem.Price * int64(sel.Quantity)
	}

	return items, total, nil
}
