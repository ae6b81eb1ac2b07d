package sqlite

import (
	"context"
	"encoding/json"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"gorm.io/gorm"
)

type sharedListsRepo struct {
	db *gorm.DB
}

func (r *sharedListsRepo) CreateSharedList(ctx context.Context, s *domain.SharedList) error {
	ids := s.TaskIDs
	if ids == nil {
		ids = []int64{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return err
	}

	row := sharedListRow{
		UserID:    ownerPtr(s.UserID),
		TokenHash: s.TokenHash,
		TaskIDs:   string(b),
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}

	s.ID = row.ID
	s.CreatedAt = row.CreatedAt.UTC()
	return nil
}

func (r *sharedListsRepo) GetSharedListByHash(ctx context.Context, hash string) (domain.SharedList, error) {
	var row sharedListRow
	if err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&row).Error; err != nil {
		return domain.SharedList{}, mapError(err)
	}
	return mapSharedList(row)
}

func (r *sharedListsRepo) CountOrphans(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&sharedListRow{}).Where("user_id IS NULL").Count(&n).Error
	return n, mapError(err)
}

func (r *sharedListsRepo) AssignOrphans(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&sharedListRow{}).Where("user_id IS NULL").UpdateColumn("user_id", userID)
	return res.RowsAffected, mapError(res.Error)
}
