package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/services"
	"github.com/baharkarakas/sample-app/internal/session"
)

// pageFrom reads ?page and ?per_page, falling back to perPage.
func pageFrom(r *http.Request, perPage int) models.PageRequest {
	q := r.URL.Query()
	req := models.PageRequest{PerPage: perPage}
	if n, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 {
		req.PerPage = n
	}
	return req.Normalize()
}

// idParam parses a positive id URL parameter; a malformed id is a 404.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrNotFound
	}
	return id, nil
}

// currentUser returns the signed-in user, answering the request itself
// when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	s := session.From(r.Context())
	if s == nil {
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "session unavailable", nil)
		return nil, false
	}
	u := s.CurrentUser(r.Context())
	if u == nil {
		loc, notice := s.DenyAccess(r.URL.RequestURI())
		httpx.Redirect(w, loc, http.StatusFound, notice)
		return nil, false
	}
	return u, true
}

func userPath(id int64) string { return "/users/" + strconv.FormatInt(id, 10) }
