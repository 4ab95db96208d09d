package stockledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
	"github.com/labiga/LaBiga-OrderService/internal/infra/notify"
	inventoryRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/inventory"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeOrders struct {
	mu  sync.Mutex
	sum int
	err error
}

func (f *fakeOrders) SumUnitsSince(ctx context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sum, f.err
}

func (f *fakeOrders) setSum(sum int) {
	f.mu.Lock()
	f.sum = sum
	f.mu.Unlock()
}

type fakeInventory struct {
	mu     sync.Mutex
	doughs int
	err    error
}

func (f *fakeInventory) GetByDate(ctx context.Context, date string) (*domain.DailyInventory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DailyInventory{Date: date, TotalDoughs: f.doughs}, nil
}

type fakeFeed struct {
	events chan notify.OrderCreatedEvent
	resync chan struct{}
}

func newFakeFeed() *fakeFeed {
	return &fakeFeed{
		events: make(chan notify.OrderCreatedEvent, 8),
		resync: make(chan struct{}, 1),
	}
}

func (f *fakeFeed) Events() <-chan notify.OrderCreatedEvent { return f.events }
func (f *fakeFeed) Resync() <-chan struct{}                 { return f.resync }

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) set(now time.Time) {
	f.mu.Lock()
	f.now = now
	f.mu.Unlock()
}

func friday20h() time.Time {
	return time.Date(2026, time.January, 2, 20, 0, 0, 0, time.UTC)
}

func newTestLedger(orders *fakeOrders, inv *fakeInventory, feed *fakeFeed, clock *fakeClock) *Ledger {
	return NewLedger(orders, inv, feed, clock, nil, nopLogger{})
}

func snapshotEventually(t *testing.T, l *Ledger, wantSold, wantCapacity int) {
	t.Helper()
	require.Eventually(t, func() bool {
		sold, capacity := l.Snapshot()
		return sold == wantSold && capacity == wantCapacity
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLedger_InitializeBaseline(t *testing.T) {
	orders := &fakeOrders{sum: 7}
	inv := &fakeInventory{doughs: 12}
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, newFakeFeed(), clock)
	ledger.Initialize(context.Background())

	sold, capacity := ledger.Snapshot()
	assert.Equal(t, 7, sold)
	assert.Equal(t, 12, capacity)

	// Baseline сигналит об изменении
	select {
	case <-ledger.Changes():
	default:
		t.Fatal("expected change signal after baseline")
	}
}

func TestLedger_InitializeOrderReadErrorDefaultsToZero(t *testing.T) {
	orders := &fakeOrders{err: errors.New("connection refused")}
	inv := &fakeInventory{doughs: 12}
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, newFakeFeed(), clock)
	ledger.Initialize(context.Background())

	sold, capacity := ledger.Snapshot()
	assert.Equal(t, 0, sold)
	assert.Equal(t, 12, capacity)
}

func TestLedger_MissingInventoryRowMeansZeroCapacity(t *testing.T) {
	orders := &fakeOrders{sum: 2}
	inv := &fakeInventory{err: inventoryRepo.ErrInventoryNotFound}
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, newFakeFeed(), clock)
	ledger.Initialize(context.Background())

	_, capacity := ledger.Snapshot()
	assert.Equal(t, 0, capacity)
}

func TestLedger_InventoryReadErrorFallsBackToDefault(t *testing.T) {
	orders := &fakeOrders{sum: 2}
	inv := &fakeInventory{err: errors.New("connection refused")}
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, newFakeFeed(), clock)
	ledger.Initialize(context.Background())

	_, capacity := ledger.Snapshot()
	assert.Equal(t, domain.DefaultDailyCapacity, capacity)
}

func TestLedger_AppliesEvents(t *testing.T) {
	orders := &fakeOrders{sum: 3}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	feed.events <- notify.OrderCreatedEvent{OrderID: "a", Units: 2}
	snapshotEventually(t, ledger, 5, 12)

	feed.events <- notify.OrderCreatedEvent{OrderID: "b", Units: 1}
	snapshotEventually(t, ledger, 6, 12)
}

func TestLedger_DeduplicatesByOrderID(t *testing.T) {
	orders := &fakeOrders{}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	feed.events <- notify.OrderCreatedEvent{OrderID: "a", Units: 2}
	feed.events <- notify.OrderCreatedEvent{OrderID: "a", Units: 2}
	feed.events <- notify.OrderCreatedEvent{OrderID: "b", Units: 1}

	snapshotEventually(t, ledger, 3, 12)
}

func TestLedger_IgnoresNonPositiveUnits(t *testing.T) {
	orders := &fakeOrders{}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	feed.events <- notify.OrderCreatedEvent{OrderID: "a", Units: 0}
	feed.events <- notify.OrderCreatedEvent{OrderID: "b", Units: -3}
	feed.events <- notify.OrderCreatedEvent{OrderID: "c", Units: 1}

	snapshotEventually(t, ledger, 1, 12)
}

func TestLedger_ResyncRebuildsBaseline(t *testing.T) {
	orders := &fakeOrders{sum: 4}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	// Переподключение: за время простоя в БД появились заказы
	orders.setSum(9)
	feed.resync <- struct{}{}

	snapshotEventually(t, ledger, 9, 12)
}

func TestLedger_DayRolloverRebuildsBaseline(t *testing.T) {
	orders := &fakeOrders{sum: 10}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	// Наступила суббота: вчерашние продажи не должны давить на новый день.
	// Первый субботний заказ уже закоммичен и виден baseline-чтению
	clock.set(time.Date(2026, time.January, 3, 0, 5, 0, 0, time.UTC))
	orders.setSum(1)

	// Смена дня замечается при обработке следующего события
	feed.events <- notify.OrderCreatedEvent{OrderID: "first-saturday", Units: 1}

	snapshotEventually(t, ledger, 1, 12)
}

func TestLedger_RolloverCountsTriggeringOrderOnce(t *testing.T) {
	orders := &fakeOrders{sum: 10}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	// Суббота: заказ, чье событие замечает смену дня, уже входит в сумму
	// нового дня. Применение события поверх baseline удвоило бы его
	clock.set(time.Date(2026, time.January, 3, 0, 5, 0, 0, time.UTC))
	orders.setSum(4)
	feed.events <- notify.OrderCreatedEvent{OrderID: "x", Units: 4}

	snapshotEventually(t, ledger, 4, 12)

	// Следующие заказы дня считаются как обычно
	feed.events <- notify.OrderCreatedEvent{OrderID: "y", Units: 2}
	snapshotEventually(t, ledger, 6, 12)
}

func TestLedger_ResyncAbsorbsBufferedEvents(t *testing.T) {
	orders := &fakeOrders{sum: 3}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	// Событие зависло в буфере на момент переподключения; его заказ
	// закоммичен до нового baseline-чтения и уже входит в сумму
	orders.setSum(5)
	feed.events <- notify.OrderCreatedEvent{OrderID: "a", Units: 2}
	feed.resync <- struct{}{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	snapshotEventually(t, ledger, 5, 12)

	// Обе ветки (событие, resync) обработаны - счетчик не уехал
	time.Sleep(50 * time.Millisecond)
	sold, _ := ledger.Snapshot()
	assert.Equal(t, 5, sold)
}

func TestLedger_SnapshotMonotonicWithinDay(t *testing.T) {
	orders := &fakeOrders{}
	inv := &fakeInventory{doughs: 12}
	feed := newFakeFeed()
	clock := &fakeClock{now: friday20h()}

	ledger := newTestLedger(orders, inv, feed, clock)
	ledger.Initialize(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ledger.Run(ctx)

	prev := 0
	for i, id := range []string{"a", "b", "c", "d"} {
		feed.events <- notify.OrderCreatedEvent{OrderID: id, Units: 1}
		snapshotEventually(t, ledger, i+1, 12)

		sold, _ := ledger.Snapshot()
		require.GreaterOrEqual(t, sold, prev)
		prev = sold
	}
}
