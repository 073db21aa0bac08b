package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pethotel/PHM-BookingWorkflow/internal/api/handlers"
)

const msgMissingUserID = "требуется заголовок X-User-ID"

type operatorIDKey struct{}

// Auth проверяет наличие заголовка X-User-ID и кладет ID оператора в контекст
// Аутентификация как таковая выполняется на API gateway; здесь только
// соглашение о передаче идентификатора
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		operatorID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || operatorID <= 0 {
			handlers.RespondError(w, http.StatusUnauthorized, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), operatorIDKey{}, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OperatorID возвращает ID оператора из контекста запроса
func OperatorID(ctx context.Context) int64 {
	if id, ok := ctx.Value(operatorIDKey{}).(int64); ok {
		return id
	}
	return 0
}
