package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

var errColumnNotFound = taskmesdk.NotFound("Column not found")

type ColumnsHandler struct {
	ColumnService *service.ColumnService
}

// HandleList returns the caller's columns in display order.
//
//	@Summary	List columns
//	@Tags		Columns
//	@Produce	json
//	@Success	200	{array}	taskmesdk.Column
//	@Security	BearerAuth
//	@Router		/api/v1/columns [get].
func (h *ColumnsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cols, err := h.ColumnService.List(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to list columns")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toColumns(cols))
}

// HandleCreate adds a custom column.
//
//	@Summary		Create column
//	@Description	The field key is derived from the display name. Select columns need a non-empty options array.
//	@Tags			Columns
//	@Accept			json
//	@Produce		json
//	@Param			request	body		taskmesdk.ColumnCreate	true	"Column"
//	@Success		201		{object}	taskmesdk.Column
//	@Failure		400		{object}	taskmesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/v1/columns [post].
func (h *ColumnsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.ColumnCreate
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	col, err := h.ColumnService.Create(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create column")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toColumn(col))
}

// HandleUpdate changes a column's name, position, visibility or options.
//
//	@Summary	Update column
//	@Tags		Columns
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Column id"
//	@Param		request	body		taskmesdk.ColumnUpdate	true	"Changes"
//	@Success	200		{object}	taskmesdk.Column
//	@Failure	400		{object}	taskmesdk.ErrorResponse
//	@Failure	404		{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/columns/{id} [patch].
func (h *ColumnsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errColumnNotFound.WriteError(w)
		return
	}

	var req taskmesdk.ColumnUpdate
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	col, err := h.ColumnService.Update(r.Context(), currentUser(r).ID, id, req)
	if err != nil {
		if errors.Is(err, service.ErrColumnNotFound) {
			errColumnNotFound.WriteError(w)
			return
		}
		writeServiceError(w, r, err, "Failed to update column")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toColumn(col))
}

// HandleReorder applies new positions.
//
//	@Summary	Reorder columns
//	@Tags		Columns
//	@Accept		json
//	@Produce	json
//	@Param		request	body	[]taskmesdk.ColumnPosition	true	"Positions"
//	@Success	200		{array}	taskmesdk.Column
//	@Security	BearerAuth
//	@Router		/api/v1/columns/reorder [patch].
func (h *ColumnsHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req []taskmesdk.ColumnPosition
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	cols, err := h.ColumnService.Reorder(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to reorder columns")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toColumns(cols))
}

// HandleDelete removes a custom column.
//
//	@Summary	Delete column
//	@Tags		Columns
//	@Produce	json
//	@Param		id	path		int	true	"Column id"
//	@Success	200	{object}	taskmesdk.OKResponse
//	@Failure	400	{object}	taskmesdk.ErrorResponse	"Core columns cannot be deleted"
//	@Failure	404	{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/columns/{id} [delete].
func (h *ColumnsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errColumnNotFound.WriteError(w)
		return
	}

	err := h.ColumnService.Delete(r.Context(), currentUser(r).ID, id)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, taskmesdk.OKResponse{OK: true})
	case errors.Is(err, service.ErrColumnNotFound):
		errColumnNotFound.WriteError(w)
	case errors.Is(err, service.ErrCoreColumnDelete):
		taskmesdk.BadRequest("Cannot delete core column").WriteError(w)
	default:
		writeServiceError(w, r, err, "Failed to delete column")
	}
}
