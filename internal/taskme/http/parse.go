package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/llm"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

const msgParseFailed = "LLM parsing failed. Please try again later."

type ParseHandler struct {
	ParseService *service.ParseService
}

// ServeHTTP extracts tasks from free text. Nothing is saved.
//
//	@Summary		Parse text into tasks
//	@Description	Sends the text to the selected LLM provider with the caller's visible custom fields as extra schema.
//	@Tags			Parse
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskmesdk.ParseRequest	true	"Text, optional provider and tone"
//	@Success		200		{object}	taskmesdk.ParseResponse
//	@Failure		400		{object}	taskmesdk.ErrorResponse	"Empty text or unknown provider"
//	@Failure		500		{object}	taskmesdk.ErrorResponse	"Provider failure"
//	@Security		BearerAuth
//	@Router			/api/v1/parse [post].
func (h *ParseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.ParseRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	tasks, err := h.ParseService.Parse(r.Context(), currentUser(r).ID, req)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, taskmesdk.ParseResponse{Tasks: toParsedTasks(tasks)})
	case errors.Is(err, llm.ErrUnknownProvider):
		taskmesdk.BadRequest("Unknown LLM provider").WriteError(w)
	default:
		writeServiceError(w, r, err, msgParseFailed)
	}
}
