package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

type contextKey string

const (
	actorIDKey   contextKey = "actorID"
	actorRoleKey contextKey = "actorRole"
)

// HTTP заголовки, проставляемые API-гейтвеем после аутентификации.
// Действующее лицо всегда передается явно, сервис не держит сессий.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Auth извлекает пользователя из заголовков гейтвея и кладет в контекст.
// Запросы без валидных заголовков отклоняются.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(HeaderUserID), 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}

		role := domain.ActorRole(r.Header.Get(HeaderUserRole))
		if role != domain.RoleCompany && role != domain.RoleCustomer {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), actorIDKey, userID)
		ctx = context.WithValue(ctx, actorRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает пользователя, положенного Auth middleware
func ActorFromContext(ctx context.Context) (int64, domain.ActorRole, bool) {
	id, ok := ctx.Value(actorIDKey).(int64)
	if !ok {
		return 0, "", false
	}
	role, ok := ctx.Value(actorRoleKey).(domain.ActorRole)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}
