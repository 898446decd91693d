// Package session resolves the signed-in user of one request and records
// the cookie changes the response must carry.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/baharkarakas/sample-app/internal/auth"
	"github.com/baharkarakas/sample-app/internal/logger"
	"github.com/baharkarakas/sample-app/internal/models"
)

const (
	SignInPath   = "/signin"
	DeniedNotice = "Please sign in to access this page."
)

// UserLookup loads a user by id, accepting it only while its salt matches.
// A missing or mismatched user is (nil, nil).
type UserLookup interface {
	AuthenticateWithSalt(ctx context.Context, id int64, salt string) (*models.User, error)
}

// Sink receives the outgoing token changes of a request.
type Sink interface {
	SetRemember(token string, expires time.Time)
	ClearRemember()
	SetReturnTo(token string)
	ClearReturnTo()
}

// State is what the client sent: the raw remember and return-to tokens.
type State struct {
	RememberToken string
	ReturnTo      string
}

type Manager struct {
	tokens *auth.TokenManager
	users  UserLookup
}

func NewManager(tokens *auth.TokenManager, users UserLookup) *Manager {
	return &Manager{tokens: tokens, users: users}
}

// Begin starts the session of one request.
func (m *Manager) Begin(st State, sink Sink) *Session {
	s := &Session{m: m, sink: sink, token: st.RememberToken}
	if st.ReturnTo != "" {
		if p, err := m.tokens.ParseReturnTo(st.ReturnTo); err == nil && safePath(p) {
			s.returnTo = p
		}
	}
	return s
}

// Session is request scoped and not safe for concurrent use.
type Session struct {
	m    *Manager
	sink Sink

	token    string
	returnTo string

	resolved bool
	user     *models.User
}

// CurrentUser returns the signed-in user or nil. Invalid tokens are treated
// as signed out; lookup failures are logged and retried on the next call.
func (s *Session) CurrentUser(ctx context.Context) *models.User {
	if s.resolved {
		return s.user
	}
	if s.token == "" {
		s.resolved = true
		return nil
	}
	id, salt, err := s.m.tokens.ParseRemember(s.token)
	if err != nil {
		logger.From(ctx).Debug("ignoring remember token", "err", err)
		s.resolved = true
		return nil
	}
	u, err := s.m.users.AuthenticateWithSalt(ctx, id, salt)
	if err != nil {
		logger.From(ctx).Error("resolve current user", "user_id", id, "err", err)
		return nil
	}
	s.user, s.resolved = u, true
	return u
}

func (s *Session) SignedIn(ctx context.Context) bool { return s.CurrentUser(ctx) != nil }

// SignIn issues a remember token for u and makes u the current user.
func (s *Session) SignIn(ctx context.Context, u *models.User) error {
	tok, exp, err := s.m.tokens.IssueRemember(u.ID, u.Salt)
	if err != nil {
		return err
	}
	s.sink.SetRemember(tok, exp)
	s.token = tok
	s.user, s.resolved = u, true
	logger.From(ctx).Info("signed in", "user_id", u.ID)
	return nil
}

func (s *Session) SignOut() {
	s.sink.ClearRemember()
	s.token = ""
	s.user, s.resolved = nil, true
}

// IsCurrentUser reports whether candidate is the signed-in user.
func (s *Session) IsCurrentUser(ctx context.Context, candidate *models.User) bool {
	return s.CurrentUser(ctx).Same(candidate)
}

// StoreLocation remembers path for RedirectBackOr. Anything but a local
// absolute path is ignored.
func (s *Session) StoreLocation(path string) {
	if !safePath(path) {
		return
	}
	tok, err := s.m.tokens.IssueReturnTo(path)
	if err != nil {
		return
	}
	s.sink.SetReturnTo(tok)
	s.returnTo = path
}

// DenyAccess stores path and returns where to send the client and what to
// tell it.
func (s *Session) DenyAccess(path string) (location, notice string) {
	s.StoreLocation(path)
	return SignInPath, DeniedNotice
}

// RedirectBackOr returns the stored location, or def, and forgets it.
func (s *Session) RedirectBackOr(def string) string {
	if s.returnTo == "" {
		return def
	}
	to := s.returnTo
	s.returnTo = ""
	s.sink.ClearReturnTo()
	return to
}

func safePath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.Contains(p, "\\")
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// From returns the request's session, or nil outside the session middleware.
func From(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
