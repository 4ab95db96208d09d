package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labiga/LaBiga-OrderService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeStock struct {
	mu       sync.Mutex
	sold     int
	capacity int
	changes  chan struct{}
}

func newFakeStock(sold, capacity int) *fakeStock {
	return &fakeStock{
		sold:     sold,
		capacity: capacity,
		changes:  make(chan struct{}, 1),
	}
}

func (f *fakeStock) Snapshot() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sold, f.capacity
}

func (f *fakeStock) Changes() <-chan struct{} {
	return f.changes
}

func (f *fakeStock) set(sold int) {
	f.mu.Lock()
	f.sold = sold
	f.mu.Unlock()
	f.changes <- struct{}{}
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func TestEngine_InitialSnapshot(t *testing.T) {
	stock := newFakeStock(3, 12)
	clock := &fixedTime{now: at(2, 20, 0)} // пятница, вечер

	engine := NewEngine(stock, clock, time.Minute, nil, nopLogger{})

	snapshot := engine.Current()
	assert.Equal(t, domain.StatusOpen, snapshot.State.Status)
	assert.Equal(t, 3, snapshot.UnitsSold)
	assert.Equal(t, 12, snapshot.Capacity)
	assert.Equal(t, 9, snapshot.Remaining)
}

func TestEngine_RemainingNeverNegative(t *testing.T) {
	stock := newFakeStock(20, 12)
	clock := &fixedTime{now: at(2, 20, 0)}

	engine := NewEngine(stock, clock, time.Minute, nil, nopLogger{})

	snapshot := engine.Current()
	assert.Equal(t, domain.StatusSoldOut, snapshot.State.Status)
	assert.Equal(t, 0, snapshot.Remaining)
}

func TestEngine_ReactsToStockChanges(t *testing.T) {
	stock := newFakeStock(11, 12)
	clock := &fixedTime{now: at(2, 20, 0)}

	engine := NewEngine(stock, clock, time.Hour, nil, nopLogger{})

	snapshots, unsubscribe := engine.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx)

	// Последняя пицца продана: движок должен пересчитать без таймера
	stock.set(12)

	select {
	case snapshot := <-snapshots:
		assert.Equal(t, domain.StatusSoldOut, snapshot.State.Status)
		assert.Equal(t, 0, snapshot.Remaining)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot received after stock change")
	}

	assert.Equal(t, domain.StatusSoldOut, engine.Current().State.Status)
}

func TestEngine_NoPublishWithoutChange(t *testing.T) {
	stock := newFakeStock(5, 12)
	clock := &fixedTime{now: at(2, 20, 0)}

	engine := NewEngine(stock, clock, time.Hour, nil, nopLogger{})

	snapshots, unsubscribe := engine.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go engine.Run(ctx)

	// Сигнал без фактического изменения счетчиков
	stock.changes <- struct{}{}

	select {
	case snapshot := <-snapshots:
		t.Fatalf("unexpected snapshot published: %+v", snapshot)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestEngine_UnsubscribeClosesChannel(t *testing.T) {
	stock := newFakeStock(0, 12)
	clock := &fixedTime{now: at(2, 20, 0)}

	engine := NewEngine(stock, clock, time.Minute, nil, nopLogger{})

	snapshots, unsubscribe := engine.Subscribe()
	unsubscribe()

	_, ok := <-snapshots
	require.False(t, ok)

	// Повторная отписка безопасна
	unsubscribe()
}
