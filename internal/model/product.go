package model

import (
	"errors"
	"time"
)

// ==================== Product 商品 ====================

// Product 商品（上游 wire 结构，金额为美元浮点，与服务端 JSON 保持一致）
// 只有归属卖家能增删改；库存由结账流程在服务端扣减
type Product struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"sellerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	// 详情接口附带的评价列表
	Reviews []Review `json:"reviews,omitempty"`
}

// ==================== 排序键 ====================

// 商品列表排序键（GET /products 的 sort 参数）
const (
	SortByName      = "name"
	SortByPriceAsc  = "price_asc"
	SortByPriceDesc = "price_desc"
	SortByNewest    = "newest"
)

// ==================== 校验 ====================

var (
	ErrInvalidPrice  = errors.New("价格必须大于 0")
	ErrInvalidStock  = errors.New("库存不能为负数")
	ErrEmptyName     = errors.New("商品名称不能为空")
	ErrEmptyCategory = errors.New("商品分类不能为空")
)

// ValidateProduct 发送前的契约校验（price > 0, stock >= 0）
// 这是 UX 层面的预检，服务端仍然是权威校验方
func ValidateProduct(name, category string, price float64, stock int) error {
	if name == "" {
		return ErrEmptyName
	}
	if category == "" {
		return ErrEmptyCategory
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	return nil
}
