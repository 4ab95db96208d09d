package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// OrderFeed push-канал с событиями о новых заказах поверх PostgreSQL
// LISTEN/NOTIFY. Контракт канала: слушатель получает только уведомления,
// отправленные после подтверждения LISTEN - события для строк, существовавших
// до подписки, не приходят. Именно на этом контракте Stock Ledger строит
// baseline-плюс-инкременты без двойного счета.
//
// pq.Listener сам переподключается с экспоненциальным backoff между
// minReconnect и maxReconnect; при переподключении приходит событие
// ListenerEventReconnected, которое мы пробрасываем подписчику как сигнал
// возможного пропуска событий.
type OrderFeed struct {
	listener *pq.Listener
	channel  string
	log      Logger

	mu     sync.Mutex
	events chan OrderCreatedEvent
	resync chan struct{}
	done   chan struct{}
	closed bool
}

// NewOrderFeed создает подписку на канал уведомлений о заказах
func NewOrderFeed(dsn, channel string, minReconnect, maxReconnect time.Duration, log Logger) (*OrderFeed, error) {
	feed := &OrderFeed{
		channel: channel,
		log:     log,
		events:  make(chan OrderCreatedEvent, 64),
		resync:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	feed.listener = pq.NewListener(dsn, minReconnect, maxReconnect, feed.onListenerEvent)

	if err := feed.listener.Listen(channel); err != nil {
		_ = feed.listener.Close()
		return nil, fmt.Errorf("%w: %v", ErrListenFailed, err)
	}

	go feed.run()

	return feed, nil
}

// Events возвращает канал событий о новых заказах
func (f *OrderFeed) Events() <-chan OrderCreatedEvent {
	return f.events
}

// Resync возвращает канал сигналов "возможен пропуск событий".
// Сигнал приходит после переподключения слушателя: подписчику следует
// заново считать baseline из БД вместо доверия накопленному счетчику.
func (f *OrderFeed) Resync() <-chan struct{} {
	return f.resync
}

// Close останавливает слушателя и закрывает каналы событий
func (f *OrderFeed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	f.closed = true
	close(f.done)
	f.mu.Unlock()

	return f.listener.Close()
}

func (f *OrderFeed) run() {
	defer close(f.events)

	for {
		select {
		case <-f.done:
			return
		case n, ok := <-f.listener.Notify:
			if !ok {
				return
			}
			// nil приходит от pq после восстановления соединения
			if n == nil {
				f.signalResync()
				continue
			}

			var event OrderCreatedEvent
			if err := json.Unmarshal([]byte(n.Extra), &event); err != nil {
				f.log.Warn("notify: malformed payload on channel %s: %v", f.channel, err)
				continue
			}

			select {
			case f.events <- event:
			case <-f.done:
				return
			}
		}
	}
}

func (f *OrderFeed) onListenerEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnected:
		f.log.Info("notify: connected, listening on channel %s", f.channel)
	case pq.ListenerEventReconnected:
		f.log.Warn("notify: reconnected to channel %s, events may have been missed", f.channel)
		f.signalResync()
	case pq.ListenerEventDisconnected:
		f.log.Warn("notify: disconnected from channel %s: %v", f.channel, err)
	case pq.ListenerEventConnectionAttemptFailed:
		f.log.Error("notify: reconnect attempt failed for channel %s: %v", f.channel, err)
	}
}

// signalResync не блокируется: один необработанный сигнал уже означает
// "нужен пересчет", копить их смысла нет
func (f *OrderFeed) signalResync() {
	select {
	case f.resync <- struct{}{}:
	default:
	}
}
