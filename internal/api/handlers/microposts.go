package handlers

import (
	"errors"
	"net/http"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/services"
)

type MicropostsHandler struct {
	Posts *services.MicropostService
}

func NewMicropostsHandler(ps *services.MicropostService) *MicropostsHandler {
	return &MicropostsHandler{Posts: ps}
}

type micropostReq struct {
	Content string `json:"content"`
}

func (h *MicropostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req micropostReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	p, err := h.Posts.Create(r.Context(), u.ID, req.Content)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

// Destroy deletes one of the caller's posts; someone else's post sends the
// caller home.
func (h *MicropostsHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	err = h.Posts.Destroy(r.Context(), u.ID, id)
	switch {
	case errors.Is(err, services.ErrForbidden):
		httpx.Redirect(w, "/", http.StatusFound, "")
	case err != nil:
		httpx.WriteErr(w, r, err)
	default:
		httpx.Redirect(w, "/", http.StatusSeeOther, "Micropost deleted")
	}
}
