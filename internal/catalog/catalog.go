package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/sabai-next/internal/models"
)

// Product 商品条目。商品目录为只读静态数据，不入库。
type Product struct {
	ID    uint         `json:"id"`    // 商品ID
	Brand string       `json:"brand"` // 品牌
	Title string       `json:"title"` // 标题
	Price models.Money `json:"price"` // 价格
	Img   string       `json:"img"`   // 图片地址
}

// Source 只读商品目录数据源
type Source interface {
	ListBrands() []string
	ListProducts(brand string) []Product
	GetProduct(id uint) (*Product, bool)
}

//go:embed products.json
var embeddedProducts []byte

// StaticSource 基于静态商品列表的数据源实现
type StaticSource struct {
	products []Product
	brands   []string
	byID     map[uint]Product
}

// NewStaticSource 从商品列表构建数据源
func NewStaticSource(products []Product) *StaticSource {
	byID := make(map[uint]Product, len(products))
	brandSet := make(map[string]struct{})
	for _, p := range products {
		byID[p.ID] = p
		if p.Brand != "" {
			brandSet[p.Brand] = struct{}{}
		}
	}
	brands := make([]string, 0, len(brandSet))
	for brand := range brandSet {
		brands = append(brands, brand)
	}
	sort.Strings(brands)

	return &StaticSource{
		products: products,
		brands:   brands,
		byID:     byID,
	}
}

// Default 返回内置商品数据源
func Default() (*StaticSource, error) {
	return parseProducts(embeddedProducts)
}

// LoadFile 从 JSON 文件加载商品数据源
func LoadFile(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file failed: %w", err)
	}
	return parseProducts(data)
}

func parseProducts(data []byte) (*StaticSource, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog data failed: %w", err)
	}
	return NewStaticSource(products), nil
}

// ListBrands 返回升序、去重后的品牌列表
func (s *StaticSource) ListBrands() []string {
	out := make([]string, len(s.brands))
	copy(out, s.brands)
	return out
}

// ListProducts 返回商品列表，brand 非空时按品牌精确过滤
func (s *StaticSource) ListProducts(brand string) []Product {
	if brand == "" {
		out := make([]Product, len(s.products))
		copy(out, s.products)
		return out
	}
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Brand == brand {
			out = append(out, p)
		}
	}
	return out
}

// GetProduct 按 ID 获取商品
func (s *StaticSource) GetProduct(id uint) (*Product, bool) {
	p, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &p, true
}
