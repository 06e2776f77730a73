package repository

import (
	"errors"

	"github.com/sabai-next/internal/models"

	"gorm.io/gorm"
)

// OrderListFilter 订单列表查询条件
type OrderListFilter struct {
	UserID   uint
	Page     int
	PageSize int
}

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository 基于 Gorm 的实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository 创建订单仓储
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 返回使用指定事务的仓储
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 创建订单及其行项目，需在同一事务内调用
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := r.db.Create(&items).Error; err != nil {
		return err
	}
	order.Items = items
	return nil
}

// GetByIDAndUser 按订单ID和所属用户查询，未找到返回 (nil, nil)
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser 查询用户订单列表，按创建时间倒序
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := applyPagination(query.Order("created_at DESC, id DESC"), filter.Page, filter.PageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
