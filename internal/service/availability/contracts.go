package availability

import "time"

// StockSource источник данных о продажах за сегодня (Stock Ledger)
type StockSource interface {
	// Snapshot возвращает текущую пару (продано, лимит)
	Snapshot() (unitsSold, capacity int)
	// Changes сигнализирует об изменении счетчика продаж
	Changes() <-chan struct{}
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// MetricsRecorder опциональный сборщик метрик состояния
type MetricsRecorder interface {
	SetAvailabilityState(active string, all []string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
