package repository

import (
	"errors"
	"time"

	"github.com/sabai-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository 收货资料数据访问接口
type ProfileRepository interface {
	GetByUserID(userID uint) (*models.Profile, error)
	Upsert(profile *models.Profile) error
	WithTx(tx *gorm.DB) ProfileRepository
}

// GormProfileRepository 基于 Gorm 的实现
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository 创建资料仓储
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// WithTx 返回使用指定事务的仓储
func (r *GormProfileRepository) WithTx(tx *gorm.DB) ProfileRepository {
	if tx == nil {
		return r
	}
	return &GormProfileRepository{db: tx}
}

// GetByUserID 按用户ID查询，未找到返回 (nil, nil)
func (r *GormProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert 按 user_id 整体覆盖写入收货资料
func (r *GormProfileRepository) Upsert(profile *models.Profile) error {
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "phone",
			"address", "city", "postal_code", "country",
			"updated_at",
		}),
	}).Create(profile).Error
}
