package stockledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	inventoryRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/inventory"
)

// rolloverCheckInterval период проверки смены календарного дня
const rolloverCheckInterval = time.Minute

// Ledger ведет счетчик проданных за сегодня пицц: один полный подсчет из БД
// при старте (baseline), дальше O(1) инкременты по realtime-событиям.
//
// Модель консистентности - eventually consistent, мерчандайзинговый сигнал,
// а не система резервирования: два одновременных покупателя могут оба увидеть
// остаток и совместно превысить лимит, заказ при этом не отклоняется. Это
// осознанный бизнес-компромисс, а не баг.
//
// Дедупликация: события учитываются по order_id, повтор игнорируется.
// Канал LISTEN/NOTIFY доставляет только события после подписки, так что
// baseline и инкременты не пересекаются; set по order_id страхует от
// повторной доставки после переподключения.
type Ledger struct {
	orders    OrderReader
	inventory InventoryReader
	feed      Feed
	clock     TimeProvider
	metrics   MetricsRecorder // может быть nil, если метрики выключены
	log       Logger

	mu          sync.RWMutex
	unitsSold   int
	capacity    int
	baselineDay string
	seen        map[string]struct{}
	closed      bool

	changes chan struct{}
}

// NewLedger создает новый Stock Ledger
func NewLedger(orders OrderReader, inventory InventoryReader, feed Feed, clock TimeProvider, metrics MetricsRecorder, log Logger) *Ledger {
	return &Ledger{
		orders:    orders,
		inventory: inventory,
		feed:      feed,
		clock:     clock,
		metrics:   metrics,
		log:       log,
		seen:      make(map[string]struct{}),
		changes:   make(chan struct{}, 1),
	}
}

// Snapshot возвращает текущую пару (продано, лимит)
func (l *Ledger) Snapshot() (unitsSold, capacity int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.unitsSold, l.capacity
}

// Changes сигнализирует об изменении счетчиков. Канал коалесцирующий:
// несколько изменений подряд могут слиться в один сигнал
func (l *Ledger) Changes() <-chan struct{} {
	return l.changes
}

// Initialize выполняет baseline-чтение: сумма пицц по сегодняшним заказам
// плюс лимит на сегодня. Ошибки чтения не фатальны - это некритичная
// витринная фича: счетчик остается на дефолтах, ошибка только логируется.
// Отсутствие строки лимита на сегодня означает лимит 0; фолбэк
// DefaultDailyCapacity применяется только при ошибке чтения.
func (l *Ledger) Initialize(ctx context.Context) {
	now := l.clock.Now()

	sold := 0
	if sum, err := l.orders.SumUnitsSince(ctx, domain.StartOfDay(now)); err != nil {
		l.log.Error("stockledger: baseline read of today's orders failed: %v", err)
	} else {
		sold = sum
	}

	capacity := domain.DefaultDailyCapacity
	inv, err := l.inventory.GetByDate(ctx, domain.DayKey(now))
	switch {
	case err == nil:
		capacity = inv.TotalDoughs
	case errors.Is(err, inventoryRepo.ErrInventoryNotFound):
		capacity = 0
	default:
		l.log.Error("stockledger: capacity read failed, falling back to %d: %v",
			domain.DefaultDailyCapacity, err)
	}

	l.mu.Lock()
	if l.closed {
		// Ledger уже остановлен: поздний ответ БД не должен воскрешать состояние
		l.mu.Unlock()
		return
	}
	l.unitsSold = sold
	l.capacity = capacity
	l.baselineDay = domain.DayKey(now)
	l.seen = make(map[string]struct{})
	l.mu.Unlock()

	l.log.Info("stockledger: baseline for %s: sold=%d, capacity=%d", domain.DayKey(now), sold, capacity)
	l.signalChange()
}

// Run обрабатывает события ленты до отмены контекста.
// Выход из Run помечает ledger закрытым: обновления после teardown
// отбрасываются, повторный подъем начинается с нового Initialize.
func (l *Ledger) Run(ctx context.Context) {
	ticker := time.NewTicker(rolloverCheckInterval)
	defer ticker.Stop()
	defer l.markClosed()

	for {
		select {
		case <-ctx.Done():
			l.log.Info("stockledger: stopped")
			return
		case <-ticker.C:
			l.maybeRollover(ctx)
		case <-l.feed.Resync():
			l.log.Warn("stockledger: feed resync requested, rebuilding baseline")
			l.rebaseline(ctx)
		case event, ok := <-l.feed.Events():
			if !ok {
				l.log.Warn("stockledger: feed closed, counter frozen")
				return
			}
			if l.maybeRollover(ctx) {
				// pg_notify уходит после коммита, значит заказ этого события
				// уже вошел в свежий baseline. Применять его нельзя
				l.markSeen(event.OrderID)
				continue
			}
			l.apply(event.OrderID, event.Units)
		}
	}
}

// apply учитывает одно событие о новом заказе
func (l *Ledger) apply(orderID string, units int) {
	if units <= 0 {
		return
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	if _, dup := l.seen[orderID]; dup {
		l.mu.Unlock()
		l.log.Warn("stockledger: duplicate event for order %s ignored", orderID)
		return
	}
	l.seen[orderID] = struct{}{}
	l.unitsSold += units
	sold, capacity := l.unitsSold, l.capacity
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.AddUnitsSold("realtime", units)
	}

	l.log.Info("stockledger: order %s adds %d units (sold=%d, capacity=%d)", orderID, units, sold, capacity)
	l.signalChange()
}

// maybeRollover перезапускает baseline при смене локального календарного дня.
// Долгоживущий сервис не может позволить себе браузерное "сброс по reload":
// без перебазирования счетчик вчерашних продаж давил бы на сегодняшний лимит.
// Возвращает true, если baseline был перестроен.
func (l *Ledger) maybeRollover(ctx context.Context) bool {
	today := domain.DayKey(l.clock.Now())

	l.mu.RLock()
	stale := l.baselineDay != "" && l.baselineDay != today
	l.mu.RUnlock()

	if !stale {
		return false
	}

	l.log.Info("stockledger: day rollover detected (%s), rebuilding baseline", today)
	l.rebaseline(ctx)
	return true
}

// rebaseline перечитывает baseline и гасит события, скопившиеся в буфере
// ленты: их заказы закоммичены до baseline-чтения и уже вошли в сумму
func (l *Ledger) rebaseline(ctx context.Context) {
	l.Initialize(ctx)
	l.absorbBuffered()
}

func (l *Ledger) absorbBuffered() {
	for {
		select {
		case event, ok := <-l.feed.Events():
			if !ok {
				return
			}
			l.markSeen(event.OrderID)
		default:
			return
		}
	}
}

// markSeen помечает заказ учтенным без изменения счетчика
func (l *Ledger) markSeen(orderID string) {
	l.mu.Lock()
	if !l.closed {
		l.seen[orderID] = struct{}{}
	}
	l.mu.Unlock()
}

func (l *Ledger) markClosed() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	close(l.changes)
}

// signalChange не блокируется: необработанный сигнал уже означает
// "нужен пересчет"
func (l *Ledger) signalChange() {
	l.mu.RLock()
	closed := l.closed
	l.mu.RUnlock()
	if closed {
		return
	}

	select {
	case l.changes <- struct{}{}:
	default:
	}
}
