package dto

import "marketfront_v1/internal/model"

// ==================== 管理员面板 DTO ====================

// AdminMetrics 平台指标
// platformRevenue = Σ 已处理提现 amountRequested × 7%
type AdminMetrics struct {
	TotalUsers      int     `json:"totalUsers"`
	TotalSellers    int     `json:"totalSellers"`
	ActiveSellers   int     `json:"activeSellers"`
	PendingSellers  int     `json:"pendingSellers"`
	TotalProducts   int     `json:"totalProducts"`
	TotalOrders     int     `json:"totalOrders"`
	TotalSales      float64 `json:"totalSales"`
	PlatformRevenue float64 `json:"platformRevenue"`
}

// PendingApprovals 两条独立的审批队列
type PendingApprovals struct {
	Sellers     []model.Seller     `json:"sellers"`
	Withdrawals []model.Withdrawal `json:"withdrawals"`
}

// AdminDashboardResponse GET /admin/dashboard
type AdminDashboardResponse struct {
	Metrics          AdminMetrics     `json:"metrics"`
	PendingApprovals PendingApprovals `json:"pendingApprovals"`
}

// SellerListResponse GET /admin/sellers
type SellerListResponse struct {
	Sellers     []model.Seller `json:"sellers"`
	Total       int64          `json:"total"`
	Pages       int            `json:"pages"`
	CurrentPage int            `json:"current_page"`
}

// WithdrawalListResponse GET /admin/withdrawals
type WithdrawalListResponse struct {
	Withdrawals []model.Withdrawal `json:"withdrawals"`
	Total       int64              `json:"total"`
	Pages       int                `json:"pages"`
	CurrentPage int                `json:"current_page"`
}

// UserListResponse GET /admin/users
type UserListResponse struct {
	Users       []model.User `json:"users"`
	Total       int64        `json:"total"`
	Pages       int          `json:"pages"`
	CurrentPage int          `json:"current_page"`
}

// ProcessWithdrawalRequest PUT /admin/withdrawals/:id/process
type ProcessWithdrawalRequest struct {
	TransactionID string `json:"transactionId,omitempty"`
}

// PageQuery 分页查询参数（page, per_page + 可选过滤）
type PageQuery struct {
	Page    int
	PerPage int
	Status  string
	Role    string
}
