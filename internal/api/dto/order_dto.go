package dto

import "marketfront_v1/internal/model"

// ==================== 订单 DTO ====================

// OrdersResponse GET /orders，按角色过滤后的列表
type OrdersResponse struct {
	Orders []model.Order `json:"orders"`
}

// UpdateOrderStatusRequest PUT /orders/:id/status
// status=shipped 时 carrier 与 trackingNumber 必须同时提供
type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	Carrier        string `json:"carrier,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
}

// OrderUpdateResponse 状态变更响应
type OrderUpdateResponse struct {
	Message string      `json:"message"`
	Order   model.Order `json:"order"`
}
