package service

import (
	"github.com/sabai-next/internal/catalog"
)

// CatalogService 商品目录服务
type CatalogService struct {
	source catalog.Source
}

// NewCatalogService 创建目录服务
func NewCatalogService(source catalog.Source) *CatalogService {
	return &CatalogService{source: source}
}

// ListBrands 返回全部品牌（去重、排序）
func (s *CatalogService) ListBrands() []string {
	return s.source.ListBrands()
}

// ListProducts 按品牌筛选商品，brand 为空时返回全部
func (s *CatalogService) ListProducts(brand string) []catalog.Product {
	return s.source.ListProducts(brand)
}

// GetProduct 按ID查询商品，未找到返回 ErrProductNotFound
func (s *CatalogService) GetProduct(id uint) (*catalog.Product, error) {
	product, ok := s.source.GetProduct(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return product, nil
}
