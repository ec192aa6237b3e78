package dto

import "marketfront_v1/internal/model"

// ==================== 卖家面板 DTO ====================

// SellerMetrics 卖家经营指标
// totalSales 不计已取消订单；pendingBalance = 已签收收入 - 已处理提现，下限 0
type SellerMetrics struct {
	TotalSales     float64 `json:"totalSales"`
	PendingBalance float64 `json:"pendingBalance"`
	TotalWithdrawn float64 `json:"totalWithdrawn"`
	ProductCount   int     `json:"productCount"`
	OrderCount     int     `json:"orderCount"`
}

// SellerDashboardResponse GET /seller/dashboard
type SellerDashboardResponse struct {
	Seller       model.Seller  `json:"seller"`
	Metrics      SellerMetrics `json:"metrics"`
	RecentOrders []model.Order `json:"recentOrders"`
}

// SellerProductsResponse GET /seller/products
type SellerProductsResponse struct {
	Products []model.Product `json:"products"`
}

// WithdrawalsResponse GET /seller/withdrawals
type WithdrawalsResponse struct {
	Withdrawals []model.Withdrawal `json:"withdrawals"`
}

// CreateWithdrawalRequest POST /seller/withdrawals
type CreateWithdrawalRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"required"`
}

// WithdrawalResponse 提现请求/处置响应
type WithdrawalResponse struct {
	Message    string           `json:"message"`
	Withdrawal model.Withdrawal `json:"withdrawal"`
}

// WithdrawalPreview 提现预览（客户端按同一公式算给用户看）
type WithdrawalPreview struct {
	AmountRequested float64 `json:"amountRequested"`
	PlatformFee     float64 `json:"platformFee"`
	AmountPaid      float64 `json:"amountPaid"`
	FeeRate         float64 `json:"feeRate"`
}

// SubmitVerificationRequest POST /seller/verification
type SubmitVerificationRequest struct {
	Documents string `json:"documents" binding:"required"`
}

// SellerResponse 卖家档案操作响应
type SellerResponse struct {
	Message string       `json:"message"`
	Seller  model.Seller `json:"seller"`
}
