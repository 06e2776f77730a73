package service

import (
	"context"

	"github.com/sabai-next/internal/catalog"
	"github.com/sabai-next/internal/logger"
	"github.com/sabai-next/internal/session"
)

// CartService 购物车服务，购物车保存在会话中
type CartService struct {
	catalog catalog.Source
	store   session.Store
}

// NewCartService 创建购物车服务
func NewCartService(source catalog.Source, store session.Store) *CartService {
	return &CartService{catalog: source, store: store}
}

// Lines 返回当前购物车内容
func (s *CartService) Lines(data *session.Data) []session.CartLine {
	if data == nil || data.Cart == nil {
		return []session.CartLine{}
	}
	return data.Cart
}

// Add 加入商品：已在购物车中时累加数量，否则按目录快照新增一行
func (s *CartService) Add(ctx context.Context, token string, data *session.Data, productID uint, qty int) ([]session.CartLine, error) {
	product, ok := s.catalog.GetProduct(productID)
	if !ok {
		return nil, ErrProductNotFound
	}

	// 已有行先累加再下限到 1，负数量即减少
	found := false
	for i := range data.Cart {
		if data.Cart[i].ProductID == productID {
			data.Cart[i].Qty += qty
			if data.Cart[i].Qty < 1 {
				data.Cart[i].Qty = 1
			}
			found = true
			break
		}
	}
	if !found {
		if qty < 1 {
			qty = 1
		}
		data.Cart = append(data.Cart, session.CartLine{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Qty:       qty,
		})
	}

	if err := s.store.Save(ctx, token, data); err != nil {
		return nil, err
	}
	logger.Infow("cart_item_added",
		"user_id", data.UserID,
		"product_id", productID,
		"qty", qty,
	)
	return data.Cart, nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, token string, data *session.Data) error {
	data.Cart = nil
	return s.store.Save(ctx, token, data)
}
