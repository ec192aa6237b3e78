package model

import "time"

// ==================== 卖家状态常量 ====================

// SellerStatus 卖家审核状态
const (
	SellerStatusPending  = "pending"  // 待审核
	SellerStatusApproved = "approved" // 已通过
	SellerStatusRejected = "rejected" // 已拒绝
)

// ==================== Seller 卖家档案 ====================

// Seller 卖家档案，与 role=seller 的 User 一对一
// 注册时创建为 pending，只有管理员操作能改为 approved/rejected
// approved 之前其商品不可被下单（服务端强制，客户端只做展示约束）
type Seller struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	BusinessName string     `json:"businessName"`
	Status       string     `json:"status"`
	Documents    string     `json:"documents,omitempty"`
	VerifiedAt   *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// IsApproved 是否已通过审核
func (s *Seller) IsApproved() bool { return s.Status == SellerStatusApproved }

// IsPending 是否待审核
func (s *Seller) IsPending() bool { return s.Status == SellerStatusPending }

// CanReview 管理员是否还能审批（approve/reject 都只对 pending 单发生效）
// 对已审批卖家重复操作视为无效动作，不会二次写 verifiedAt
func (s *Seller) CanReview() bool { return s.Status == SellerStatusPending }
