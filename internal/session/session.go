package session

import (
	"context"

	"github.com/sabai-next/internal/models"
)

// CartLine 购物车行项目，保存加入时的商品快照
type CartLine struct {
	ProductID uint         `json:"product_id"`
	Title     string       `json:"title"`
	Price     models.Money `json:"price"`
	Qty       int          `json:"qty"`
}

// Data 会话数据，随会话令牌持久化在服务端
type Data struct {
	UserID   uint       `json:"user_id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Cart     []CartLine `json:"cart"`
}

// Store 会话存储接口
type Store interface {
	// Create 创建新会话并返回不透明令牌
	Create(ctx context.Context, data *Data) (string, error)
	// Get 读取会话，未找到或已过期时返回 (nil, nil)
	Get(ctx context.Context, token string) (*Data, error)
	// Save 覆盖写入会话数据并刷新有效期
	Save(ctx context.Context, token string, data *Data) error
	// Delete 删除会话
	Delete(ctx context.Context, token string) error
}
