package models

// OrderItem 订单项表，下单时从购物车行快照而来
type OrderItem struct {
	ID        uint   `gorm:"primarykey" json:"id"`                              // 主键
	OrderID   uint   `gorm:"index;not null" json:"order_id"`                    // 订单ID
	ProductID uint   `gorm:"not null" json:"product_id"`                        // 商品ID
	Title     string `gorm:"not null" json:"title"`                             // 商品标题快照
	Price     Money  `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
	Qty       int    `gorm:"not null" json:"qty"`                               // 数量
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
