package models

import (
	"time"
)

// Order 订单表
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`                              // 主键
	UserID    uint      `gorm:"index;not null" json:"user_id"`                     // 用户ID
	Status    string    `gorm:"not null;default:'pending'" json:"status"`          // 订单状态
	Total     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // 实付金额
	CreatedAt time.Time `gorm:"index" json:"created_at"`                           // 创建时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
