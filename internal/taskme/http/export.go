package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

type ExportHandler struct {
	ExportService *service.ExportService
}

// ServeHTTP streams the caller's tasks as an .xlsx workbook.
//
//	@Summary	Export tasks to Excel
//	@Tags		Export
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Param		ids			query		string	false	"Comma separated task ids"
//	@Param		status		query		string	false	"Exact status"
//	@Param		priority	query		string	false	"Exact priority"
//	@Param		owner		query		string	false	"Exact owner"
//	@Success	200			{file}		binary
//	@Failure	400			{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/export/excel [get].
func (h *ExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	ids, err := httpx.ParseIDList(q.Get("ids"))
	if err != nil {
		taskmesdk.BadRequest("ids must be comma separated integers").WriteError(w)
		return
	}

	wb, err := h.ExportService.Excel(r.Context(), currentUser(r).ID, service.ExportFilter{
		IDs:      ids,
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Owner:    q.Get("owner"),
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to export tasks")
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", service.ExcelContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+wb.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(wb.Body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = wb.Body.WriteTo(w)
}
