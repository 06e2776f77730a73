package service

import (
	"context"

	"github.com/sabai-next/internal/constants"
	"github.com/sabai-next/internal/logger"
	"github.com/sabai-next/internal/models"
	"github.com/sabai-next/internal/repository"
	"github.com/sabai-next/internal/session"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutSummary 结账页数据
type CheckoutSummary struct {
	Cart    []session.CartLine `json:"cart"`
	Total   models.Money       `json:"total"`
	Profile *models.Profile    `json:"profile"`
}

// OrderService 订单服务
type OrderService struct {
	orders   repository.OrderRepository
	profiles *ProfileService
	cart     *CartService
}

// NewOrderService 创建订单服务
func NewOrderService(orders repository.OrderRepository, profiles *ProfileService, cart *CartService) *OrderService {
	return &OrderService{orders: orders, profiles: profiles, cart: cart}
}

// CartTotal 按快照价格计算购物车总额
func CartTotal(lines []session.CartLine) models.Money {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	return models.NewMoneyFromDecimal(total)
}

// Summary 生成结账页数据
func (s *OrderService) Summary(data *session.Data) (*CheckoutSummary, error) {
	profile, err := s.profiles.Get(data.UserID)
	if err != nil {
		return nil, err
	}
	lines := s.cart.Lines(data)
	return &CheckoutSummary{
		Cart:    lines,
		Total:   CartTotal(lines),
		Profile: profile,
	}, nil
}

// PlaceOrder 下单：校验购物车和收货资料，事务内写入订单及行项目，成功后清空购物车
func (s *OrderService) PlaceOrder(ctx context.Context, token string, data *session.Data) (*models.Order, error) {
	lines := s.cart.Lines(data)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	profile, err := s.profiles.Get(data.UserID)
	if err != nil {
		return nil, err
	}
	if !s.profiles.IsComplete(profile) {
		return nil, ErrIncompleteProfile
	}

	order := &models.Order{
		UserID: data.UserID,
		Status: constants.OrderStatusPending,
		Total:  CartTotal(lines),
	}
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Title:     line.Title,
			Price:     line.Price,
			Qty:       line.Qty,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.orders.WithTx(tx).Create(order, items)
	})
	if err != nil {
		return nil, err
	}

	// 订单落库后才清空购物车，清空失败不影响已创建的订单
	if err := s.cart.Clear(ctx, token, data); err != nil {
		logger.Warnw("cart_clear_after_checkout_failed",
			"user_id", data.UserID,
			"order_id", order.ID,
			"error", err,
		)
	}

	logger.Infow("order_placed",
		"user_id", data.UserID,
		"order_id", order.ID,
		"total", order.Total.String(),
		"items", len(items),
	)
	return order, nil
}

// ListByUser 查询用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orders.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetByIDAndUser 查询用户自己的订单详情，未找到返回 ErrNotFound
func (s *OrderService) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	order, err := s.orders.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}
