package domain

import "time"

// Расписание работы пиццерии. Захардкожено: печь работает с четверга по
// воскресенье, 19:00-23:00, окно "скоро открываемся" за час до открытия,
// окно "скоро закрываемся" за полчаса до закрытия.
const (
	PreOpenHour  = 18.0 // начало окна opening-soon
	OpenHour     = 19.0 // открытие
	LastCallHour = 22.5 // начало окна closing-soon
	CloseHour    = 23.0 // закрытие
)

// IsServiceDay returns true if the shop operates on the given weekday
// (Thursday through Sunday)
func IsServiceDay(day time.Weekday) bool {
	switch day {
	case time.Thursday, time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

// FractionalHour returns the local time of day as a fractional hour,
// e.g. 22:30 -> 22.5
func FractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// StartOfDay возвращает полночь локального календарного дня момента t
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayKey возвращает ключ календарного дня (YYYY-MM-DD) момента t
func DayKey(t time.Time) string {
	return t.Format(DateFormat)
}
