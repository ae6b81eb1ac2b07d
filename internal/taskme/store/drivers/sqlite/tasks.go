package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tasksRepo struct {
	db *gorm.DB
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applyTaskFilter(q *gorm.DB, f domain.TaskFilter) *gorm.DB {
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", string(f.Priority))
	}
	if f.Owner != "" {
		q = q.Where("owner = ?", f.Owner)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pat := "%" + likeEscaper.Replace(s) + "%"
		q = q.Where(`(task_name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\')`, pat, pat)
	}
	return q
}

func (r *tasksRepo) ListTasks(ctx context.Context, userID int64, f domain.TaskFilter) ([]domain.Task, error) {
	if !domain.IsSortableTaskField(f.SortBy) {
		f.SortBy, f.Desc = domain.SortCreatedAt, true
	}

	q := applyTaskFilter(r.db.WithContext(ctx).Where("user_id = ?", userID), f).
		Order(clause.OrderByColumn{Column: clause.Column{Name: f.SortBy}, Desc: f.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: f.Desc})

	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []taskRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}

	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTask(row))
	}
	return out, nil
}

func (r *tasksRepo) GetTask(ctx context.Context, userID, id int64) (domain.Task, error) {
	var row taskRow
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error
	if err != nil {
		return domain.Task{}, mapError(err)
	}
	return mapTask(row), nil
}

func (r *tasksRepo) GetTasksByIDs(ctx context.Context, ids []int64) ([]domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var rows []taskRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}

	out := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTask(row))
	}
	return out, nil
}

func (r *tasksRepo) CountOwnedTasks(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var n int64
	err := r.db.WithContext(ctx).Model(&taskRow{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Count(&n).Error
	return n, mapError(err)
}

func (r *tasksRepo) CreateTask(ctx context.Context, t *domain.Task) error {
	row := toTaskRow(t)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	*t = mapTask(row)
	return nil
}

func (r *tasksRepo) UpdateTask(ctx context.Context, t *domain.Task) error {
	row := toTaskRow(t)
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&taskRow{}).
		Where("id = ? AND user_id = ?", t.ID, t.UserID).
		Updates(map[string]any{
			"task_name":     row.TaskName,
			"description":   row.Description,
			"owner":         row.Owner,
			"email":         row.Email,
			"start_date":    row.StartDate,
			"due_date":      row.DueDate,
			"status":        row.Status,
			"priority":      row.Priority,
			"custom_fields": row.CustomFields,
			"updated_at":    now,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}

	t.UpdatedAt = now
	return nil
}

func (r *tasksRepo) DeleteTask(ctx context.Context, userID, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&taskRow{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *tasksRepo) DeleteTasks(ctx context.Context, userID int64, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var deleted []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&taskRow{}).
			Where("user_id = ? AND id IN ?", userID, ids).
			Order("id").
			Pluck("id", &deleted).Error; err != nil {
			return err
		}
		if len(deleted) == 0 {
			return nil
		}
		return tx.Where("user_id = ? AND id IN ?", userID, deleted).Delete(&taskRow{}).Error
	})
	if err != nil {
		return nil, mapError(err)
	}
	return deleted, nil
}

func (r *tasksRepo) DeleteAllTasks(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&taskRow{})
	return res.RowsAffected, mapError(res.Error)
}

func (r *tasksRepo) CountOrphans(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&taskRow{}).Where("user_id IS NULL").Count(&n).Error
	return n, mapError(err)
}

func (r *tasksRepo) AssignOrphans(ctx context.Context, userID int64) (int64, error) {
	// UpdateColumn leaves updated_at alone.
	res := r.db.WithContext(ctx).Model(&taskRow{}).Where("user_id IS NULL").UpdateColumn("user_id", userID)
	return res.RowsAffected, mapError(res.Error)
}
