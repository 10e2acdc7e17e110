package repository

import (
	"context"
	"time"

	"apibasics/internal/domain"

	"gorm.io/gorm"
)

// RefreshTokenRepository provides DB access for refresh tokens. It does
// not interpret expiry; callers decide what an expired row means.
type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// GetByToken looks up a row by exact token string, preloading the
// owning user. Expired rows are returned as-is.
func (r *RefreshTokenRepository) GetByToken(ctx context.Context, tok string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Preload("User").Where("token = ?", tok).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteByToken removes the row matching the token and reports whether
// anything was deleted. A false return means the token was already
// gone, which is not an error at this layer.
func (r *RefreshTokenRepository) DeleteByToken(ctx context.Context, tok string) (bool, error) {
	res := r.db.WithContext(ctx).Where("token = ?", tok).Delete(&domain.RefreshToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
