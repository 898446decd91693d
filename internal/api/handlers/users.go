package handlers

import (
	"context"
	"net/http"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/models"
	"github.com/baharkarakas/sample-app/internal/services"
	"github.com/baharkarakas/sample-app/internal/session"
)

type UsersHandler struct {
	Users   *services.UserService
	Posts   *services.MicropostService
	Graph   *services.GraphService
	PerPage int
}

func NewUsersHandler(us *services.UserService, ps *services.MicropostService, gs *services.GraphService, perPage int) *UsersHandler {
	return &UsersHandler{Users: us, Posts: ps, Graph: gs, PerPage: perPage}
}

// Create registers an account and signs it in.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.UserInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.Users.Register(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if err := session.From(r.Context()).SignIn(r.Context(), &u); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.Redirect(w, userPath(u.ID), http.StatusSeeOther, "Welcome to the Sample App!")
}

func (h *UsersHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.Users.List(r.Context(), pageFrom(r, h.PerPage))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}

type profile struct {
	User       models.User                   `json:"user"`
	Microposts models.Page[models.Micropost] `json:"microposts"`
	Following  int64                         `json:"following_count"`
	Followers  int64                         `json:"followers_count"`
	// IsFollowing is set when a signed-in viewer looks at someone else.
	IsFollowing *bool `json:"is_following,omitempty"`
}

func (h *UsersHandler) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := idParam(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.Users.Get(ctx, id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	posts, err := h.Posts.ListByUser(ctx, id, pageFrom(r, h.PerPage))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	out := profile{User: u, Microposts: posts}

	one := models.PageRequest{PerPage: 1}
	following, err := h.Graph.Following(ctx, id, one)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	followers, err := h.Graph.Followers(ctx, id, one)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	out.Following, out.Followers = following.Total, followers.Total

	if s := session.From(ctx); s != nil {
		if cur := s.CurrentUser(ctx); cur != nil && !cur.Same(&u) {
			f, err := h.Graph.IsFollowing(ctx, cur.ID, u.ID)
			if err != nil {
				httpx.WriteErr(w, r, err)
				return
			}
			out.IsFollowing = &f
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	var in services.UserInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), id, in)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	// the salt may have changed, so reissue the remember token
	if err := session.From(r.Context()).SignIn(r.Context(), &u); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.Redirect(w, userPath(u.ID), http.StatusSeeOther, "Profile updated")
}

func (h *UsersHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	actor, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := h.Users.Destroy(r.Context(), actor, id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.Redirect(w, "/users", http.StatusSeeOther, "User destroyed.")
}

func (h *UsersHandler) Following(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.Graph.Following)
}

func (h *UsersHandler) Followers(w http.ResponseWriter, r *http.Request) {
	h.related(w, r, h.Graph.Followers)
}

type relatedFn func(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.User], error)

func (h *UsersHandler) related(w http.ResponseWriter, r *http.Request, list relatedFn) {
	id, err := idParam(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	if _, err := h.Users.Get(r.Context(), id); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	page, err := list(r.Context(), id, pageFrom(r, h.PerPage))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, page)
}
