package handlers

import (
	"net/http"

	"github.com/baharkarakas/sample-app/internal/api/httpx"
	"github.com/baharkarakas/sample-app/internal/services"
)

type RelationshipsHandler struct {
	Graph *services.GraphService
}

func NewRelationshipsHandler(gs *services.GraphService) *RelationshipsHandler {
	return &RelationshipsHandler{Graph: gs}
}

type followReq struct {
	FollowedID int64 `json:"followed_id"`
}

func (h *RelationshipsHandler) Create(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req followReq
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	rel, err := h.Graph.Follow(r.Context(), u.ID, req.FollowedID)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.Redirect(w, userPath(rel.FollowedID), http.StatusSeeOther, "")
}

func (h *RelationshipsHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	u, ok := currentUser(w, r)
	if !ok {
		return
	}
	id, err := idParam(r, "id")
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	followed, err := h.Graph.UnfollowByRelationship(r.Context(), u.ID, id)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.Redirect(w, userPath(followed), http.StatusSeeOther, "")
}
