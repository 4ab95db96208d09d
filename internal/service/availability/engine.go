package availability

import (
	"context"
	"sync"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

// Snapshot состояние магазина вместе со счетчиками остатка
type Snapshot struct {
	State       domain.AvailabilityState
	UnitsSold   int
	Capacity    int
	Remaining   int // max(capacity - sold, 0) - мерчандайзинговый сигнал, не резерв
	GeneratedAt time.Time
}

// Engine владеет жизненным циклом пересчета состояния: фиксированный таймер
// плюс реактивный пересчет при каждом изменении счетчика продаж. Благодаря
// второму источнику переход в sold-out виден в пределах одного realtime
// round-trip, а не через минуту.
//
// Таймер и подписка живут строго внутри Run: отмена контекста освобождает
// оба ресурса, глобального состояния нет.
type Engine struct {
	stock    StockSource
	clock    TimeProvider
	interval time.Duration
	metrics  MetricsRecorder // может быть nil, если метрики выключены
	log      Logger

	mu      sync.RWMutex
	current Snapshot
	subs    map[chan Snapshot]struct{}
}

// NewEngine создает новый движок пересчета состояния
func NewEngine(stock StockSource, clock TimeProvider, interval time.Duration, metrics MetricsRecorder, log Logger) *Engine {
	e := &Engine{
		stock:    stock,
		clock:    clock,
		interval: interval,
		metrics:  metrics,
		log:      log,
		subs:     make(map[chan Snapshot]struct{}),
	}
	e.current = e.compute()
	return e
}

// Current возвращает последний рассчитанный снимок состояния
func (e *Engine) Current() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Subscribe подписывает на смены состояния. Возвращенная функция отписывает;
// её обязан вызвать каждый подписчик при завершении (teardown-контракт)
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)

	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.mu.Unlock()

	unsubscribe := func() {
		e.mu.Lock()
		if _, ok := e.subs[ch]; ok {
			delete(e.subs, ch)
			close(ch)
		}
		e.mu.Unlock()
	}

	return ch, unsubscribe
}

// Run крутит цикл пересчета до отмены контекста
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.refresh()

	for {
		select {
		case <-ctx.Done():
			e.log.Info("availability: engine stopped")
			return
		case <-ticker.C:
			e.refresh()
		case _, ok := <-e.stock.Changes():
			if !ok {
				e.log.Info("availability: stock source closed, engine stopped")
				return
			}
			e.refresh()
		}
	}
}

func (e *Engine) compute() Snapshot {
	sold, capacity := e.stock.Snapshot()

	remaining := capacity - sold
	if remaining < 0 {
		remaining = 0
	}

	now := e.clock.Now()
	return Snapshot{
		State:       Derive(now, sold, capacity),
		UnitsSold:   sold,
		Capacity:    capacity,
		Remaining:   remaining,
		GeneratedAt: now,
	}
}

func (e *Engine) refresh() {
	next := e.compute()

	e.mu.Lock()
	prev := e.current
	e.current = next
	changed := prev.State.Status != next.State.Status ||
		prev.Remaining != next.Remaining ||
		prev.State.Subtext != next.State.Subtext

	if changed {
		for ch := range e.subs {
			// Медленный подписчик пропускает снимок, но не тормозит движок
			select {
			case ch <- next:
			default:
			}
		}
	}
	e.mu.Unlock()

	if !changed {
		return
	}

	if prev.State.Status != next.State.Status {
		e.log.Info("availability: state %s -> %s (sold=%d, capacity=%d)",
			prev.State.Status, next.State.Status, next.UnitsSold, next.Capacity)
	}

	if e.metrics != nil {
		all := make([]string, len(domain.AllStatuses))
		for i, s := range domain.AllStatuses {
			all[i] = string(s)
		}
		e.metrics.SetAvailabilityState(string(next.State.Status), all)
	}
}
