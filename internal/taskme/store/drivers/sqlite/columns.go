package sqlite

import (
	"context"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"gorm.io/gorm"
)

type columnsRepo struct {
	db *gorm.DB
}

func (r *columnsRepo) list(ctx context.Context, query string, args ...any) ([]domain.ColumnConfig, error) {
	var rows []columnRow
	if err := r.db.WithContext(ctx).Where(query, args...).Order("position, id").Find(&rows).Error; err != nil {
		return nil, mapError(err)
	}

	out := make([]domain.ColumnConfig, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapColumn(row))
	}
	return out, nil
}

func (r *columnsRepo) ListColumns(ctx context.Context, userID int64) ([]domain.ColumnConfig, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *columnsRepo) ListVisibleCustomColumns(ctx context.Context, userID int64) ([]domain.ColumnConfig, error) {
	return r.list(ctx, "user_id = ? AND is_visible = ? AND is_core = ?", userID, true, false)
}

func (r *columnsRepo) GetColumn(ctx context.Context, userID, id int64) (domain.ColumnConfig, error) {
	var row columnRow
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		return domain.ColumnConfig{}, mapError(err)
	}
	return mapColumn(row), nil
}

func (r *columnsRepo) FieldKeyExists(ctx context.Context, userID int64, fieldKey string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&columnRow{}).
		Where("user_id = ? AND field_key = ?", userID, fieldKey).
		Count(&n).Error
	return n > 0, mapError(err)
}

func (r *columnsRepo) MaxPosition(ctx context.Context, userID int64) (int, error) {
	var maxPos int
	err := r.db.WithContext(ctx).Model(&columnRow{}).
		Select("COALESCE(MAX(position), -1)").
		Where("user_id = ?", userID).
		Scan(&maxPos).Error
	return maxPos, mapError(err)
}

func (r *columnsRepo) CreateColumn(ctx context.Context, c *domain.ColumnConfig) error {
	row, err := toColumnRow(c)
	if err != nil {
		return err
	}
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	c.ID = row.ID
	return nil
}

func (r *columnsRepo) UpdateColumn(ctx context.Context, c *domain.ColumnConfig) error {
	row, err := toColumnRow(c)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Model(&columnRow{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]any{
			"display_name": row.DisplayName,
			"position":     row.Position,
			"is_visible":   row.IsVisible,
			"options":      row.Options,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *columnsRepo) UpdatePosition(ctx context.Context, userID, id int64, position int) error {
	res := r.db.WithContext(ctx).Model(&columnRow{}).
		Where("id = ? AND user_id = ?", id, userID).
		UpdateColumn("position", position)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *columnsRepo) DeleteColumn(ctx context.Context, userID, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&columnRow{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *columnsRepo) CountOrphans(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&columnRow{}).Where("user_id IS NULL").Count(&n).Error
	return n, mapError(err)
}

func (r *columnsRepo) AssignOrphans(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&columnRow{}).Where("user_id IS NULL").UpdateColumn("user_id", userID)
	return res.RowsAffected, mapError(res.Error)
}
