package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/taskme/internal/taskme/events"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
)

type EventsHandler struct {
	Hub *events.Hub
}

// ServeHTTP upgrades to a websocket that streams the caller's task changes.
//
//	@Summary		Live task events
//	@Description	Websocket. Messages are {"type","task_ids","at"}. The token may be passed as ?access_token=.
//	@Tags			Events
//	@Param			access_token	query	string	false	"Bearer token for clients that cannot set headers"
//	@Success		101
//	@Security		BearerAuth
//	@Router			/api/v1/events [get].
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.Hub.Serve(w, r, currentUser(r).ID); err != nil {
		slogx.FromContext(r.Context()).Warn("websocket upgrade failed", slog.Any("error", err))
	}
}
