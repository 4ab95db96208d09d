package stream_availability

import (
	"github.com/labiga/LaBiga-OrderService/internal/service/availability"
)

// AvailabilityStream источник снимков состояния магазина
type AvailabilityStream interface {
	Current() availability.Snapshot
	// Subscribe возвращает канал снимков и функцию отписки
	Subscribe() (<-chan availability.Snapshot, func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
