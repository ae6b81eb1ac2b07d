package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

type ShareHandler struct {
	ShareService *service.ShareService
}

// HandleCreate mints a read-only share link.
//
//	@Summary	Create share link
//	@Tags		Share
//	@Accept		json
//	@Produce	json
//	@Param		request	body		taskmesdk.ShareRequest	true	"Task ids to share"
//	@Success	201		{object}	taskmesdk.ShareResponse
//	@Failure	400		{object}	taskmesdk.ErrorResponse
//	@Failure	403		{object}	taskmesdk.ErrorResponse	"Some tasks do not belong to you"
//	@Security	BearerAuth
//	@Router		/api/v1/share [post].
func (h *ShareHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.ShareRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	link, err := h.ShareService.Create(r.Context(), currentUser(r).ID, req.TaskIDs)
	if err != nil {
		if errors.Is(err, service.ErrShareForbidden) {
			taskmesdk.Forbidden("Some tasks do not belong to you").WriteError(w)
			return
		}
		writeServiceError(w, r, err, "Failed to create share link")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, taskmesdk.ShareResponse{
		Token:     link.Token,
		URL:       link.URL,
		ExpiresAt: link.ExpiresAt,
	})
}

// HandleGet resolves a share link. No authentication.
//
//	@Summary	Read shared tasks
//	@Tags		Share
//	@Produce	json
//	@Param		token	path		string	true	"Share token"
//	@Success	200		{object}	taskmesdk.SharedTasksResponse
//	@Failure	404		{object}	taskmesdk.ErrorResponse	"Share link not found"
//	@Failure	410		{object}	taskmesdk.ErrorResponse	"Share link has expired"
//	@Router		/api/v1/share/{token} [get].
func (h *ShareHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tasks, expiresAt, err := h.ShareService.Resolve(r.Context(), mux.Vars(r)["token"])
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, taskmesdk.SharedTasksResponse{
			Tasks:     toTasks(tasks),
			ExpiresAt: expiresAt,
		})
	case errors.Is(err, service.ErrShareNotFound):
		taskmesdk.NotFound("Share link not found").WriteError(w)
	case errors.Is(err, service.ErrShareExpired):
		taskmesdk.Gone("Share link has expired").WriteError(w)
	default:
		writeServiceError(w, r, err, "Failed to load shared tasks")
	}
}
