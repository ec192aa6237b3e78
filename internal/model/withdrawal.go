package model

import (
	"errors"
	"math"
	"time"
)

// ==================== 提现常量 ====================

// WithdrawalMethod 提现方式
const (
	WithdrawalMethodPaypal = "paypal"
	WithdrawalMethodBank   = "bank"
)

// WithdrawalStatus 提现状态，processed/rejected 都是终态
// 被拒绝的提现不能重试，只能新建请求
const (
	WithdrawalStatusPending   = "pending"
	WithdrawalStatusProcessed = "processed"
	WithdrawalStatusRejected  = "rejected"
)

// PlatformFeeRate 平台手续费率，固定 7%
const PlatformFeeRate = 0.07

// ==================== Withdrawal 提现 ====================

// Withdrawal 卖家提现请求
// amountPaid 永远是派生值 amountRequested × (1 - 7%)，客户端算一份
// 用于展示，服务端算的那份才是权威
type Withdrawal struct {
	ID              string     `json:"id"`
	SellerID        string     `json:"sellerId"`
	AmountRequested float64    `json:"amountRequested"`
	AmountPaid      float64    `json:"amountPaid"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	TransactionID   string     `json:"transactionId,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty"`
}

// CanReview 管理员是否还能处置（只对 pending 有效）
func (w *Withdrawal) CanReview() bool { return w.Status == WithdrawalStatusPending }

// ==================== 金额计算 ====================

var (
	ErrInvalidAmount       = errors.New("提现金额必须大于 0")
	ErrInsufficientBalance = errors.New("可提现余额不足")
	ErrInvalidMethod       = errors.New("提现方式无效")
)

// NetAmount 计算到账金额：amountRequested × 0.93，四舍五入到分
func NetAmount(amountRequested float64) float64 {
	return math.Round(amountRequested*(1-PlatformFeeRate)*100) / 100
}

// ValidateWithdrawal 发送前校验：金额为正、不超过可提现余额、方式合法
func ValidateWithdrawal(amount, pendingBalance float64, method string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > pendingBalance {
		return ErrInsufficientBalance
	}
	if method != WithdrawalMethodPaypal && method != WithdrawalMethodBank {
		return ErrInvalidMethod
	}
	return nil
}
