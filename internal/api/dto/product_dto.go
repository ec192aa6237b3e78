package dto

import "marketfront_v1/internal/model"

// ==================== 商品相关 DTO ====================

// ProductListQuery GET /products 查询参数
type ProductListQuery struct {
	Page     int
	PerPage  int
	Category string
	Search   string
	Sort     string // name | price_asc | price_desc | newest
}

// ProductListResponse 商品分页响应
// 所有列表接口统一返回 {items, total, pages, current_page} 结构
type ProductListResponse struct {
	Products    []model.Product `json:"products"`
	Total       int64           `json:"total"`
	Pages       int             `json:"pages"`
	CurrentPage int             `json:"current_page"`
}

// CreateProductRequest POST /products
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category" binding:"required"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// UpdateProductRequest PUT /products/:id，部分更新
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}

// ProductResponse 单商品操作响应
type ProductResponse struct {
	Message string        `json:"message"`
	Product model.Product `json:"product"`
}

// CategoriesResponse GET /products/categories
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// CreateReviewRequest POST /products/:id/reviews
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// MessageResponse 只带 message 的通用响应
type MessageResponse struct {
	Message string `json:"message"`
}
