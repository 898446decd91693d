package handlers

import (
	"net/http"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/services"
	"github.com/baharkarakas/sample-app/internal/session"
)

type FeedHandler struct {
	Feed    *services.FeedService
	PerPage int
}

func NewFeedHandler(fs *services.FeedService, perPage int) *FeedHandler {
	return &FeedHandler{Feed: fs, PerPage: perPage}
}

func (h *FeedHandler) Show(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	page, err := h.Feed.Feed(r.Context(), u.ID, pageFrom(r, h.PerPage))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

type home struct {
	Title string `json:"title"`
	// Feed is present only for a signed-in visitor.
	Feed *models.Page[models.Micropost] `json:"feed,omitempty"`
}

// Home greets visitors and shows the feed to a signed-in user.
func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	out := home{Title: "Home"}
	if s := session.From(r.Context()); s != nil {
		if u := s.CurrentUser(r.Context()); u != nil {
			page, err := h.Feed.Feed(r.Context(), u.ID, pageFrom(r, h.PerPage))
			if err != nil {
				httpx.WriteErr(w, r, err)
				return
			}
			out.Feed = &page
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
