package model

import (
	"errors"
	"testing"
)

// ==================== 状态机测试 ====================

func TestCanTransition_ForwardChain(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"pending前进到processing", OrderStatusPending, OrderStatusProcessing, true},
		{"processing前进到shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"shipped前进到in_transit", OrderStatusShipped, OrderStatusInTransit, true},
		{"in_transit前进到delivered", OrderStatusInTransit, OrderStatusDelivered, true},
		{"不允许跳级", OrderStatusPending, OrderStatusShipped, false},
		{"不允许跳到终点", OrderStatusPending, OrderStatusDelivered, false},
		{"不允许回退", OrderStatusShipped, OrderStatusProcessing, false},
		{"delivered是终态", OrderStatusDelivered, OrderStatusPending, false},
		{"cancelled是终态", OrderStatusCancelled, OrderStatusProcessing, false},
		{"未知状态", "unknown", OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCanTransition_Cancel(t *testing.T) {
	tests := []struct {
		name string
		from string
		want bool
	}{
		{"pending可取消", OrderStatusPending, true},
		{"processing可取消", OrderStatusProcessing, true},
		{"shipped不可取消", OrderStatusShipped, false},
		{"in_transit不可取消", OrderStatusInTransit, false},
		{"delivered不可取消", OrderStatusDelivered, false},
		{"cancelled不可再取消", OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, OrderStatusCancelled); got != tt.want {
				t.Errorf("CanTransition(%s, cancelled) = %v, want %v", tt.from, got, tt.want)
			}
		})
	}
}

func TestValidateTransition_ShipmentFields(t *testing.T) {
	// shipped 变更必须同时带承运商和运单号
	if err := ValidateTransition(OrderStatusProcessing, OrderStatusShipped, "", ""); !errors.Is(err, ErrShipmentIncomplete) {
		t.Errorf("缺少发货信息应返回 ErrShipmentIncomplete, got %v", err)
	}
	if err := ValidateTransition(OrderStatusProcessing, OrderStatusShipped, "UPS", ""); !errors.Is(err, ErrShipmentIncomplete) {
		t.Errorf("只有承运商应返回 ErrShipmentIncomplete, got %v", err)
	}
	if err := ValidateTransition(OrderStatusProcessing, OrderStatusShipped, "", "1Z999"); !errors.Is(err, ErrShipmentIncomplete) {
		t.Errorf("只有运单号应返回 ErrShipmentIncomplete, got %v", err)
	}
	if err := ValidateTransition(OrderStatusProcessing, OrderStatusShipped, "UPS", "1Z999"); err != nil {
		t.Errorf("完整发货信息不应报错, got %v", err)
	}

	// 其他状态变更不要求发货字段
	if err := ValidateTransition(OrderStatusPending, OrderStatusProcessing, "", ""); err != nil {
		t.Errorf("pending->processing 不应要求发货字段, got %v", err)
	}
}

func TestValidateTransition_InvalidFlow(t *testing.T) {
	err := ValidateTransition(OrderStatusDelivered, OrderStatusShipped, "UPS", "1Z999")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("非法流转应返回 ErrInvalidTransition, got %v", err)
	}
}

// ==================== 订单辅助方法测试 ====================

func TestOrder_IsTerminal(t *testing.T) {
	for _, status := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusInTransit} {
		o := Order{Status: status}
		if o.IsTerminal() {
			t.Errorf("%s 不应是终态", status)
		}
	}
	for _, status := range []string{OrderStatusDelivered, OrderStatusCancelled} {
		o := Order{Status: status}
		if !o.IsTerminal() {
			t.Errorf("%s 应是终态", status)
		}
	}
}

func TestOrder_ItemsTotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Quantity: 2, Price: 10.5},
		{Quantity: 1, Price: 4.0},
	}}
	if got := o.ItemsTotal(); got != 25.0 {
		t.Errorf("ItemsTotal() = %v, want 25.0", got)
	}
}
