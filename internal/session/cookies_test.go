package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSink(t *testing.T) {
	rec := httptest.NewRecorder()
	sink := NewCookieSink(rec, true)
	exp := time.Now().Add(time.Hour)
	sink.SetRemember("tok", exp)
	sink.SetReturnTo("ret")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	remember := cookies[0]
	assert.Equal(t, RememberCookie, remember.Name)
	assert.Equal(t, "tok", remember.Value)
	assert.True(t, remember.HttpOnly)
	assert.True(t, remember.Secure)
	assert.Equal(t, http.SameSiteLaxMode, remember.SameSite)
	assert.Equal(t, "/", remember.Path)
	assert.WithinDuration(t, exp, remember.Expires, time.Second)

	returnTo := cookies[1]
	assert.Equal(t, ReturnToCookie, returnTo.Name)
	assert.True(t, returnTo.Expires.IsZero())

	rec = httptest.NewRecorder()
	NewCookieSink(rec, false).ClearRemember()
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestStateFrom(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, State{}, StateFrom(r))

	r.AddCookie(&http.Cookie{Name: RememberCookie, Value: "a"})
	r.AddCookie(&http.Cookie{Name: ReturnToCookie, Value: "b"})
	assert.Equal(t, State{RememberToken: "a", ReturnTo: "b"}, StateFrom(r))
}
