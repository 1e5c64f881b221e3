package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/bobylov03/salon/internal/api/handlers"
)

type contextKey string

const adminIDKey contextKey = "adminID"

// HeaderAdminID заголовок с ID администратора салона
const HeaderAdminID = "X-Admin-ID"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth извлекает ID администратора из заголовка и кладёт его в контекст
// Запросы без корректного заголовка отклоняются
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderAdminID)
			if raw == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderAdminID)
				handlers.RespondUnauthorized(w, "отсутствует ID администратора")
				return
			}

			adminID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || adminID <= 0 {
				logger.Warn("%s %s - Invalid %s header: %q", r.Method, r.URL.Path, HeaderAdminID, raw)
				handlers.RespondUnauthorized(w, "некорректный ID администратора")
				return
			}

			ctx := context.WithValue(r.Context(), adminIDKey, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminID возвращает ID администратора из контекста
func GetAdminID(ctx context.Context) (int64, bool) {
	adminID, ok := ctx.Value(adminIDKey).(int64)
	return adminID, ok
}
