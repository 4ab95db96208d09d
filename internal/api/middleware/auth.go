package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labiga/LaBiga-OrderService/internal/api/handlers"
)

// AdminPinHeader заголовок со статическим PIN администратора
const AdminPinHeader = "X-Admin-Pin"

const msgAccessDenied = "acceso denegado"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth проверяет статический PIN в заголовке X-Admin-Pin.
// Сравнение константное по времени, чтобы PIN нельзя было подобрать
// по таймингу ответов
func AdminAuth(pin string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(AdminPinHeader)

			if subtle.ConstantTimeCompare([]byte(provided), []byte(pin)) != 1 {
				logger.Warn("AdminAuth: access denied for %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondError(w, http.StatusUnauthorized, msgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
