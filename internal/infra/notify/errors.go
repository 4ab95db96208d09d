package notify

import "errors"

var (
	// ErrListenFailed возвращается, когда не удалось подписаться на канал
	ErrListenFailed = errors.New("notify: failed to listen on channel")

	// ErrClosed возвращается при операциях над закрытым слушателем
	ErrClosed = errors.New("notify: listener is closed")
)
