package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

type NotifyHandler struct {
	NotifyService *service.NotifyService
}

// ServeHTTP emails the assignee of each listed task.
//
//	@Summary		Send task notifications
//	@Description	Tasks without an email address are skipped. Per-task send failures are reported, not fatal.
//	@Tags			Email
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskmesdk.NotifyRequest	true	"Task ids and optional note"
//	@Success		200		{object}	taskmesdk.NotifyResponse
//	@Failure		404		{object}	taskmesdk.ErrorResponse	"No tasks found"
//	@Failure		429		{object}	taskmesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/v1/email/notify [post].
func (h *NotifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.NotifyRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	res, err := h.NotifyService.Notify(r.Context(), currentUser(r).ID, req.TaskIDs, req.Message)
	if err != nil {
		if errors.Is(err, service.ErrNoTasksFound) {
			taskmesdk.NotFound("No tasks found").WriteError(w)
			return
		}
		writeServiceError(w, r, err, "Failed to send notifications")
		return
	}

	out := taskmesdk.NotifyResponse{Sent: res.Sent, Errors: make([]taskmesdk.NotifyError, len(res.Errors))}
	for i, e := range res.Errors {
		out.Errors[i] = taskmesdk.NotifyError{TaskID: e.TaskID, Error: e.Message}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
