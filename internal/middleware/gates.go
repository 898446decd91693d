package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/metrics"
	"github.com/baharkarakas/sample-app/internal/session"
)

// Predicate decides whether a request may proceed.
type Predicate func(r *http.Request, s *session.Session) bool

// FailHandler answers a request a Predicate rejected.
type FailHandler func(w http.ResponseWriter, r *http.Request, s *session.Session)

func SignedIn(r *http.Request, s *session.Session) bool { return s.SignedIn(r.Context()) }

func NotSignedIn(r *http.Request, s *session.Session) bool { return !s.SignedIn(r.Context()) }

// CorrectUser passes when the URL parameter names the signed-in user.
func CorrectUser(param string) Predicate {
	return func(r *http.Request, s *session.Session) bool {
		id, ok := urlID(r, param)
		cur := s.CurrentUser(r.Context())
		return ok && cur != nil && cur.ID == id
	}
}

// AdminNotSelf passes for an admin acting on anyone but themselves.
func AdminNotSelf(param string) Predicate {
	return func(r *http.Request, s *session.Session) bool {
		id, ok := urlID(r, param)
		cur := s.CurrentUser(r.Context())
		return ok && cur != nil && cur.Admin && cur.ID != id
	}
}

func urlID(r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	return id, err == nil && id > 0
}

// Require runs preds in order and hands the request to onFail at the first
// one that rejects it.
func Require(onFail FailHandler, preds ...Predicate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.From(r.Context())
			if s == nil {
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "session unavailable", nil)
				return
			}
			for _, p := range preds {
				if !p(r, s) {
					metrics.AccessDeniedTotal.Inc()
					onFail(w, r, s)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// DenyAccess remembers the requested path and sends the client to sign in.
func DenyAccess(w http.ResponseWriter, r *http.Request, s *session.Session) {
	loc, notice := s.DenyAccess(r.URL.RequestURI())
	httpx.Redirect(w, loc, http.StatusFound, notice)
}

func RedirectTo(location string) FailHandler {
	return func(w http.ResponseWriter, _ *http.Request, _ *session.Session) {
		httpx.Redirect(w, location, http.StatusFound, "")
	}
}
