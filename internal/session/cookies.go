package session

import (
	"net/http"
	"time"
)

const (
	RememberCookie = "remember_token"
	ReturnToCookie = "return_to"
)

// CookieSink writes token changes as Set-Cookie headers.
type CookieSink struct {
	w      http.ResponseWriter
	secure bool
}

func NewCookieSink(w http.ResponseWriter, secure bool) *CookieSink {
	return &CookieSink{w: w, secure: secure}
}

func (c *CookieSink) set(name, value string, expires time.Time, maxAge int) {
	http.SetCookie(c.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieSink) SetRemember(token string, expires time.Time) {
	c.set(RememberCookie, token, expires, 0)
}

func (c *CookieSink) ClearRemember() { c.set(RememberCookie, "", time.Unix(0, 0), -1) }

// SetReturnTo sets a browser-session cookie.
func (c *CookieSink) SetReturnTo(token string) { c.set(ReturnToCookie, token, time.Time{}, 0) }

func (c *CookieSink) ClearReturnTo() { c.set(ReturnToCookie, "", time.Unix(0, 0), -1) }

// StateFrom reads the session cookies of r.
func StateFrom(r *http.Request) State {
	var st State
	if c, err := r.Cookie(RememberCookie); err == nil {
		st.RememberToken = c.Value
	}
	if c, err := r.Cookie(ReturnToCookie); err == nil {
		st.ReturnTo = c.Value
	}
	return st
}
