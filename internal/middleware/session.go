package middleware

import (
	"net/http"

	"github.com/baharkarakas/sample-app/internal/session"
)

// Sessions begins a session per request from its cookies and stores it in
// the request context.
func Sessions(m *session.Manager, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := m.Begin(session.StateFrom(r), session.NewCookieSink(w, secureCookies))
			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}
