package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetDesk/internal/api/handlers"
)

const (
	msgNotAuthenticated = "требуется вход в систему"
	msgAdminOnly        = "доступно только администратору"
)

// RequireSession пропускает запрос только при активной сессии
func RequireSession(session SessionChecker) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.Authenticated() {
				handlers.RespondUnauthorized(w, msgNotAuthenticated)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin пропускает запрос только для роли admin
func RequireAdmin(session SessionChecker) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.Authenticated() {
				handlers.RespondUnauthorized(w, msgNotAuthenticated)
				return
			}
			if !session.IsAdmin() {
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
