package handlers

import (
	"net/http"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/metrics"
	"github.com/baharkarakas/sample-app/internal/services"
	"github.com/baharkarakas/sample-app/internal/session"
)

type SessionsHandler struct {
	Users *services.UserService
}

func NewSessionsHandler(us *services.UserService) *SessionsHandler {
	return &SessionsHandler{Users: us}
}

// New is the sign-in entry point that access denials redirect to.
func (h *SessionsHandler) New(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"title": "Sign in"})
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *SessionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req signInReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if u == nil {
		metrics.SignInsTotal.WithLabelValues("failure").Inc()
		httpx.WriteErr(w, r, services.ErrInvalidCredentials)
		return
	}

	s := session.From(r.Context())
	if err := s.SignIn(r.Context(), u); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	metrics.SignInsTotal.WithLabelValues("success").Inc()
	httpx.Redirect(w, s.RedirectBackOr(userPath(u.ID)), http.StatusSeeOther, "")
}

func (h *SessionsHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	session.From(r.Context()).SignOut()
	httpx.Redirect(w, "/", http.StatusSeeOther, "")
}
