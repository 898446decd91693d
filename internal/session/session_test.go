package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/sample-app/internal/auth"
	"github.com/baharkarakas/sample-app/internal/models"
)

type fakeUsers struct {
	users map[int64]models.User
	err   error
	calls int
}

func (f *fakeUsers) AuthenticateWithSalt(_ context.Context, id int64, salt string) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok || u.Salt != salt {
		return nil, nil
	}
	return &u, nil
}

// recorder is a Sink that keeps the last value written, like a browser jar.
type recorder struct {
	remember string
	expires  time.Time
	returnTo string
}

func (r *recorder) SetRemember(tok string, exp time.Time) { r.remember, r.expires = tok, exp }
func (r *recorder) ClearRemember()                        { r.remember = "" }
func (r *recorder) SetReturnTo(tok string)                { r.returnTo = tok }
func (r *recorder) ClearReturnTo()                        { r.returnTo = "" }

func (r *recorder) state() State { return State{RememberToken: r.remember, ReturnTo: r.returnTo} }

func newManager(users *fakeUsers) *Manager {
	return NewManager(auth.NewTokenManager("secret", "test", 24*time.Hour), users)
}

func TestSession_SignInRoundTrip(t *testing.T) {
	ctx := context.Background()
	u := models.User{ID: 7, Name: "Seven", Salt: "s1"}
	users := &fakeUsers{users: map[int64]models.User{7: u}}
	m := newManager(users)
	jar := &recorder{}

	first := m.Begin(State{}, jar)
	assert.False(t, first.SignedIn(ctx))
	require.NoError(t, first.SignIn(ctx, &u))
	assert.True(t, first.IsCurrentUser(ctx, &u))
	require.NotEmpty(t, jar.remember)
	assert.True(t, jar.expires.After(time.Now()))

	// a fresh request presenting the cookie
	second := m.Begin(jar.state(), jar)
	cur := second.CurrentUser(ctx)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)

	second.CurrentUser(ctx)
	assert.Equal(t, 1, users.calls, "current user is memoized per request")

	second.SignOut()
	assert.Nil(t, second.CurrentUser(ctx))
	assert.Empty(t, jar.remember)

	third := m.Begin(jar.state(), jar)
	assert.False(t, third.SignedIn(ctx))
}

func TestSession_SaltChangeInvalidatesToken(t *testing.T) {
	ctx := context.Background()
	u := models.User{ID: 1, Salt: "old"}
	users := &fakeUsers{users: map[int64]models.User{1: u}}
	m := newManager(users)
	jar := &recorder{}
	require.NoError(t, m.Begin(State{}, jar).SignIn(ctx, &u))

	u.Salt = "new"
	users.users[1] = u
	assert.Nil(t, m.Begin(jar.state(), jar).CurrentUser(ctx))
}

func TestSession_BadTokensMeanSignedOut(t *testing.T) {
	ctx := context.Background()
	u := models.User{ID: 1, Salt: "s"}
	users := &fakeUsers{users: map[int64]models.User{1: u}}
	m := newManager(users)

	other := NewManager(auth.NewTokenManager("other-secret", "test", time.Hour), users)
	foreign := &recorder{}
	require.NoError(t, other.Begin(State{}, foreign).SignIn(ctx, &u))
	own := &recorder{}
	require.NoError(t, m.Begin(State{}, own).SignIn(ctx, &u))

	for name, tok := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign.remember,
		"tampered":     own.remember + "x",
	} {
		t.Run(name, func(t *testing.T) {
			s := m.Begin(State{RememberToken: tok}, &recorder{})
			assert.Nil(t, s.CurrentUser(ctx))
			assert.False(t, s.SignedIn(ctx))
		})
	}

	t.Run("unknown user", func(t *testing.T) {
		gone := models.User{ID: 99, Salt: "s"}
		j := &recorder{}
		require.NoError(t, m.Begin(State{}, j).SignIn(ctx, &gone))
		assert.Nil(t, m.Begin(j.state(), j).CurrentUser(ctx))
	})
}

func TestSession_LookupErrorIsNotMemoized(t *testing.T) {
	ctx := context.Background()
	u := models.User{ID: 1, Salt: "s"}
	users := &fakeUsers{users: map[int64]models.User{1: u}}
	m := newManager(users)
	jar := &recorder{}
	require.NoError(t, m.Begin(State{}, jar).SignIn(ctx, &u))

	s := m.Begin(jar.state(), jar)
	users.err = errors.New("db down")
	assert.Nil(t, s.CurrentUser(ctx))

	users.err = nil
	cur := s.CurrentUser(ctx)
	require.NotNil(t, cur)
	assert.Equal(t, u.ID, cur.ID)
}

func TestSession_FriendlyForwarding(t *testing.T) {
	m := newManager(&fakeUsers{})
	jar := &recorder{}

	loc, notice := m.Begin(State{}, jar).DenyAccess("/users/1/following")
	assert.Equal(t, SignInPath, loc)
	assert.Equal(t, DeniedNotice, notice)
	require.NotEmpty(t, jar.returnTo)

	next := m.Begin(jar.state(), jar)
	assert.Equal(t, "/users/1/following", next.RedirectBackOr("/users/1"))
	assert.Empty(t, jar.returnTo)
	assert.Equal(t, "/users/1", next.RedirectBackOr("/users/1"))

	assert.Equal(t, "/users/1", m.Begin(jar.state(), jar).RedirectBackOr("/users/1"))
}

func TestSession_StoreLocationRejectsForeignTargets(t *testing.T) {
	m := newManager(&fakeUsers{})
	for _, p := range []string{"https://evil.example", "//evil.example/x", "relative", "/\\evil.example"} {
		jar := &recorder{}
		s := m.Begin(State{}, jar)
		s.StoreLocation(p)
		assert.Empty(t, jar.returnTo, p)
		assert.Equal(t, "/home", s.RedirectBackOr("/home"), p)
	}
}

func TestSession_ReturnToTokenIsSigned(t *testing.T) {
	m := newManager(&fakeUsers{})
	s := m.Begin(State{ReturnTo: "/users"}, &recorder{})
	assert.Equal(t, "/", s.RedirectBackOr("/"))
}

func TestFrom(t *testing.T) {
	assert.Nil(t, From(context.Background()))
	s := newManager(&fakeUsers{}).Begin(State{}, &recorder{})
	assert.Same(t, s, From(WithSession(context.Background(), s)))
}
