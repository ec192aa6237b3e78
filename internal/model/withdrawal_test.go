package model

import (
	"errors"
	"testing"
)

func TestNetAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"整百", 100, 93.00},
		{"小额", 10, 9.30},
		{"需要四舍五入", 33.33, 31.00}, // 33.33 * 0.93 = 30.9969
		{"一分钱", 0.01, 0.01},      // 0.0093 -> 0.01
		{"大额", 2500, 2325.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NetAmount(tt.amount); got != tt.want {
				t.Errorf("NetAmount(%v) = %v, want %v", tt.amount, got, tt.want)
			}
		})
	}
}

func TestValidateWithdrawal(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		balance float64
		method  string
		wantErr error
	}{
		{"正常提现", 50, 100, WithdrawalMethodPaypal, nil},
		{"全额提现", 100, 100, WithdrawalMethodBank, nil},
		{"金额为零", 0, 100, WithdrawalMethodPaypal, ErrInvalidAmount},
		{"金额为负", -10, 100, WithdrawalMethodPaypal, ErrInvalidAmount},
		{"超过余额", 100.01, 100, WithdrawalMethodPaypal, ErrInsufficientBalance},
		{"方式无效", 50, 100, "alipay", ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWithdrawal(tt.amount, tt.balance, tt.method)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateWithdrawal() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithdrawal_CanReview(t *testing.T) {
	// 只有 pending 能处置，processed/rejected 都是终态
	if !(&Withdrawal{Status: WithdrawalStatusPending}).CanReview() {
		t.Error("pending 提现应可处置")
	}
	if (&Withdrawal{Status: WithdrawalStatusProcessed}).CanReview() {
		t.Error("processed 提现不应可处置")
	}
	if (&Withdrawal{Status: WithdrawalStatusRejected}).CanReview() {
		t.Error("rejected 提现不应可处置")
	}
}
