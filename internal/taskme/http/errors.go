package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/slogx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

// writeServiceError writes validation failures as 400 and anything else as
// a 500 carrying only desc. Handlers map their own sentinels first.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, desc string) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		taskmesdk.BadRequest(ve.Message).WriteError(w)
		return
	}

	slogx.FromContext(r.Context()).Error(desc, slog.Any("error", err))
	taskmesdk.ServerError(desc).WriteError(w)
}

// pathID reads the numeric {id} route variable.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}
