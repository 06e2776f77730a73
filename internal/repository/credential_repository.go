package repository

import (
	"errors"

	"github.com/sabai-next/internal/models"

	"gorm.io/gorm"
)

// CredentialRepository 登录凭证数据访问接口
type CredentialRepository interface {
	GetByID(id uint) (*models.Credential, error)
	GetByUsername(username string) (*models.Credential, error)
	GetByEmail(email string) (*models.Credential, error)
	Create(cred *models.Credential) error
	UpdateEmail(id uint, email string) error
	EmailTakenByOther(id uint, email string) (bool, error)
	WithTx(tx *gorm.DB) CredentialRepository
}

// GormCredentialRepository 基于 Gorm 的实现
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository 创建凭证仓储
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// WithTx 返回使用指定事务的仓储
func (r *GormCredentialRepository) WithTx(tx *gorm.DB) CredentialRepository {
	if tx == nil {
		return r
	}
	return &GormCredentialRepository{db: tx}
}

// GetByID 按主键查询，未找到返回 (nil, nil)
func (r *GormCredentialRepository) GetByID(id uint) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.First(&cred, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// GetByUsername 按用户名查询，未找到返回 (nil, nil)
func (r *GormCredentialRepository) GetByUsername(username string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.Where("username = ?", username).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// GetByEmail 按邮箱查询，未找到返回 (nil, nil)
func (r *GormCredentialRepository) GetByEmail(email string) (*models.Credential, error) {
	var cred models.Credential
	err := r.db.Where("email = ?", email).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// Create 创建登录凭证
func (r *GormCredentialRepository) Create(cred *models.Credential) error {
	return r.db.Create(cred).Error
}

// UpdateEmail 更新邮箱
func (r *GormCredentialRepository) UpdateEmail(id uint, email string) error {
	return r.db.Model(&models.Credential{}).Where("id = ?", id).Update("email", email).Error
}

// EmailTakenByOther 检查邮箱是否被其他账号占用
func (r *GormCredentialRepository) EmailTakenByOther(id uint, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Credential{}).
		Where("email = ? AND id != ?", email, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
