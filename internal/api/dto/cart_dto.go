package dto

import "marketfront_v1/internal/model"

// ==================== 购物车 / 结账 DTO ====================

// CartResponse GET /orders/cart
type CartResponse struct {
	Items []model.CartItem `json:"items"`
}

// AddCartItemRequest POST /orders/cart
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest PUT /orders/cart/:itemId
// quantity <= 0 时上游直接删掉该行
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest POST /orders/checkout
type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	Method          string `json:"method" binding:"required"`
}

// CheckoutResponse 结账成功响应，跨卖家购物车会返回多张订单
type CheckoutResponse struct {
	Message string        `json:"message"`
	Orders  []model.Order `json:"orders"`
}

// CheckoutPreview 结账预览视图模型（纯客户端计算，价格为预览时快照）
type CheckoutPreview struct {
	Partitions []model.SellerPartition `json:"partitions"`
	GrandTotal float64                 `json:"grandTotal"`
	ItemCount  int                     `json:"itemCount"`
}
