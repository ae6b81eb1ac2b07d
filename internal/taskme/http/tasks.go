package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/service"
	"github.com/aussiebroadwan/taskme/pkg/httpx"
	"github.com/aussiebroadwan/taskme/pkg/taskmesdk"
)

var errTaskNotFound = taskmesdk.NotFound("Task not found")

type TasksHandler struct {
	TaskService *service.TaskService
}

// HandleList lists the caller's tasks.
//
//	@Summary	List tasks
//	@Tags		Tasks
//	@Produce	json
//	@Param		status		query		string	false	"Exact status"
//	@Param		priority	query		string	false	"Exact priority"
//	@Param		owner		query		string	false	"Exact owner"
//	@Param		search		query		string	false	"Substring of name or description"
//	@Param		sort_by		query		string	false	"task_name, created_at, updated_at, due_date, start_date, priority, status or owner"
//	@Param		order		query		string	false	"asc or desc"
//	@Param		offset		query		int		false	"Rows to skip"
//	@Param		limit		query		int		false	"Page size, at most 500"
//	@Success	200			{array}		taskmesdk.Task
//	@Failure	400			{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks [get].
func (h *TasksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	offset, err := httpx.QueryInt(r, "offset", 0)
	if err != nil {
		taskmesdk.BadRequest(err.Error()).WriteError(w)
		return
	}
	limit, err := httpx.QueryInt(r, "limit", domain.DefaultTaskLimit)
	if err != nil {
		taskmesdk.BadRequest(err.Error()).WriteError(w)
		return
	}

	tasks, err := h.TaskService.List(r.Context(), currentUser(r).ID, taskmesdk.TaskListParams{
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Owner:    q.Get("owner"),
		Search:   q.Get("search"),
		SortBy:   q.Get("sort_by"),
		Order:    q.Get("order"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		writeServiceError(w, r, err, "Failed to list tasks")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTasks(tasks))
}

// HandleGet returns one task.
//
//	@Summary	Get task
//	@Tags		Tasks
//	@Produce	json
//	@Param		id	path		int	true	"Task id"
//	@Success	200	{object}	taskmesdk.Task
//	@Failure	404	{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks/{id} [get].
func (h *TasksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errTaskNotFound.WriteError(w)
		return
	}

	t, err := h.TaskService.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			errTaskNotFound.WriteError(w)
			return
		}
		writeServiceError(w, r, err, "Failed to load task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTask(t))
}

// HandleCreate creates one task.
//
//	@Summary	Create task
//	@Tags		Tasks
//	@Accept		json
//	@Produce	json
//	@Param		request	body		taskmesdk.TaskCreate	true	"Task"
//	@Success	201		{object}	taskmesdk.Task
//	@Failure	400		{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks [post].
func (h *TasksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req taskmesdk.TaskCreate
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	t, err := h.TaskService.Create(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create task")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTask(t))
}

// HandleCreateBulk creates several tasks atomically.
//
//	@Summary	Create tasks in bulk
//	@Tags		Tasks
//	@Accept		json
//	@Produce	json
//	@Param		request	body		[]taskmesdk.TaskCreate	true	"Tasks"
//	@Success	201		{array}		taskmesdk.Task
//	@Failure	400		{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks/bulk [post].
func (h *TasksHandler) HandleCreateBulk(w http.ResponseWriter, r *http.Request) {
	var req []taskmesdk.TaskCreate
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	tasks, err := h.TaskService.CreateMany(r.Context(), currentUser(r).ID, req)
	if err != nil {
		writeServiceError(w, r, err, "Failed to create tasks")
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toTasks(tasks))
}

// HandleUpdate partially updates a task.
//
//	@Summary		Update task
//	@Description	Only the fields present are changed. custom_fields merges into the stored object.
//	@Tags			Tasks
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Task id"
//	@Param			request	body		taskmesdk.TaskUpdate	true	"Changes"
//	@Success		200		{object}	taskmesdk.Task
//	@Failure		400		{object}	taskmesdk.ErrorResponse
//	@Failure		404		{object}	taskmesdk.ErrorResponse
//	@Security		BearerAuth
//	@Router			/api/v1/tasks/{id} [patch].
func (h *TasksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errTaskNotFound.WriteError(w)
		return
	}

	var req taskmesdk.TaskUpdate
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	t, err := h.TaskService.Update(r.Context(), currentUser(r).ID, id, req)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			errTaskNotFound.WriteError(w)
			return
		}
		writeServiceError(w, r, err, "Failed to update task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toTask(t))
}

// HandleDelete deletes one task.
//
//	@Summary	Delete task
//	@Tags		Tasks
//	@Produce	json
//	@Param		id	path		int	true	"Task id"
//	@Success	200	{object}	taskmesdk.OKResponse
//	@Failure	404	{object}	taskmesdk.ErrorResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks/{id} [delete].
func (h *TasksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		errTaskNotFound.WriteError(w)
		return
	}

	if err := h.TaskService.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			errTaskNotFound.WriteError(w)
			return
		}
		writeServiceError(w, r, err, "Failed to delete task")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, taskmesdk.OKResponse{OK: true})
}

// HandleDeleteBulk deletes the listed tasks the caller owns.
//
//	@Summary	Delete tasks in bulk
//	@Tags		Tasks
//	@Accept		json
//	@Produce	json
//	@Param		request	body		[]int	true	"Task ids"
//	@Success	200		{object}	taskmesdk.DeleteResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks/bulk/delete [delete].
func (h *TasksHandler) HandleDeleteBulk(w http.ResponseWriter, r *http.Request) {
	var ids []int64
	if err := httpx.DecodeJSON(w, r, &ids); err != nil {
		taskmesdk.ErrInvalidBody.WriteError(w)
		return
	}

	n, err := h.TaskService.DeleteMany(r.Context(), currentUser(r).ID, ids)
	if err != nil {
		writeServiceError(w, r, err, "Failed to delete tasks")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, taskmesdk.DeleteResponse{OK: true, Deleted: n})
}

// HandleDeleteAll deletes every task the caller owns.
//
//	@Summary	Delete all tasks
//	@Tags		Tasks
//	@Produce	json
//	@Success	200	{object}	taskmesdk.DeleteResponse
//	@Security	BearerAuth
//	@Router		/api/v1/tasks/all [delete].
func (h *TasksHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.TaskService.DeleteAll(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, r, err, "Failed to delete tasks")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, taskmesdk.DeleteResponse{OK: true, Deleted: n})
}
