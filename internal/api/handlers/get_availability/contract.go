package get_availability

import (
	"github.com/labiga/LaBiga-OrderService/internal/service/availability"
)

// AvailabilityProvider источник текущего состояния магазина
type AvailabilityProvider interface {
	Current() availability.Snapshot
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
