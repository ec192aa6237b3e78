package model

import (
	"errors"
	"fmt"
	"time"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态，沿固定顺序单向推进，不允许回退
const (
	OrderStatusPending    = "pending"    // 待处理
	OrderStatusProcessing = "processing" // 处理中
	OrderStatusShipped    = "shipped"    // 已发货
	OrderStatusInTransit  = "in_transit" // 在途
	OrderStatusDelivered  = "delivered"  // 已签收
	OrderStatusCancelled  = "cancelled"  // 已取消（终态）
)

// orderFlow 正向推进链
var orderFlow = map[string]string{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusInTransit,
	OrderStatusInTransit:  OrderStatusDelivered,
}

// cancellableFrom 允许取消的起点
var cancellableFrom = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
}

// ==================== Order 订单 ====================

// Order 订单，买家 → 单一卖家
// 跨卖家购物车在结账时已拆成多张订单，所有 OrderItem 同属一个卖家
type Order struct {
	ID              string    `json:"id"`
	BuyerID         string    `json:"buyerId"`
	SellerID        string    `json:"sellerId"`
	TotalPrice      float64   `json:"totalPrice"`
	ShippingAddress string    `json:"shippingAddress"`
	Method          string    `json:"method"`
	Carrier         string    `json:"carrier,omitempty"`
	TrackingNumber  string    `json:"trackingNumber,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem 订单行，price 是成交时的快照价，之后商品改价不影响它
type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"orderId"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`

	Product *Product `json:"product,omitempty"`
}

// IsTerminal 是否终态
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// ItemsTotal 按行快照价汇总
func (o *Order) ItemsTotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// ==================== 状态机 ====================

var (
	ErrInvalidTransition  = errors.New("订单状态不允许该流转")
	ErrShipmentIncomplete = errors.New("发货必须同时提供承运商和运单号")
)

// CanTransition 判断 from → to 是否合法
// 合法流转只有两类：沿 orderFlow 前进一步，或从 pending/processing 取消
func CanTransition(from, to string) bool {
	if to == OrderStatusCancelled {
		return cancellableFrom[from]
	}
	return orderFlow[from] == to
}

// ValidateTransition 完整校验一次状态变更
// shipped 变更要求 carrier 和 trackingNumber 原子性同时给出
func ValidateTransition(from, to, carrier, trackingNumber string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to == OrderStatusShipped && (carrier == "" || trackingNumber == "") {
		return ErrShipmentIncomplete
	}
	return nil
}
