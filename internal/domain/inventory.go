package domain

import "time"

// DailyInventory дневной лимит масс, задается администратором
// Одна строка на календарный день; отсутствие строки на сегодня означает
// нулевой лимит (ничего не продаем)
type DailyInventory struct {
	ID          int64
	Date        string // календарный день в формате YYYY-MM-DD
	TotalDoughs int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
