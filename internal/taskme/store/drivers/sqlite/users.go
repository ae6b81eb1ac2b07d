package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taskme/internal/taskme/domain"
	"github.com/aussiebroadwan/taskme/internal/taskme/store"
	"gorm.io/gorm"
)

type usersRepo struct {
	db *gorm.DB
}

func (r *usersRepo) first(ctx context.Context, query string, args ...any) (domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, args...).First(&row).Error; err != nil {
		return domain.User{}, mapError(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *usersRepo) GetUserByVerificationHash(ctx context.Context, hash string) (domain.User, error) {
	return r.first(ctx, "verification_token_hash = ?", hash)
}

func (r *usersRepo) CreateUser(ctx context.Context, u *domain.User) error {
	row := toUserRow(u)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError(err)
	}
	*u = mapUser(row)
	return nil
}

func (r *usersRepo) SetVerificationToken(ctx context.Context, userID int64, hash string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"verification_token_hash": hash,
			"verification_expires_at": expiresAt.UTC(),
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, userID int64) error {
	res := r.db.WithContext(ctx).Model(&userRow{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"email_verified":          true,
			"verification_token_hash": nil,
			"verification_expires_at": nil,
		})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) ListUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).Model(&userRow{}).Order("id").Pluck("id", &ids).Error
	return ids, mapError(err)
}
