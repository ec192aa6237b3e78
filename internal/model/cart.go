package model

import (
	"errors"
	"time"
)

// ==================== CartItem 购物车行 ====================

// CartItem 购物车行项目，只存在于加购和结账/移除之间
// 服务端对同一 (userId, productId) 重复加购会在已有行上累加数量，
// 不会插入重复行，客户端按同样语义合并展示
type CartItem struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`

	// 服务端返回时解析好的商品快照
	Product *Product `json:"product,omitempty"`
}

var ErrInvalidQuantity = errors.New("数量必须大于 0")

// Subtotal 行小计（按快照价）
func (i *CartItem) Subtotal() float64 {
	if i.Product == nil {
		return 0
	}
	return i.Product.Price * float64(i.Quantity)
}

// ==================== 按卖家分单 ====================

// SellerPartition 一个卖家的购物车分组，结账时对应一张订单
type SellerPartition struct {
	SellerID string
	Items    []CartItem
	Total    float64
}

// PartitionBySeller 按归属卖家切分购物车
// 结账的不变式：一张订单只含同一卖家的商品，跨卖家购物车必须拆单
// 分组顺序按首次出现的卖家顺序保持稳定
func PartitionBySeller(items []CartItem) []SellerPartition {
	index := make(map[string]int)
	parts := make([]SellerPartition, 0)

	for _, item := range items {
		if item.Product == nil {
			continue
		}
		sellerID := item.Product.SellerID
		i, ok := index[sellerID]
		if !ok {
			i = len(parts)
			index[sellerID] = i
			parts = append(parts, SellerPartition{SellerID: sellerID})
		}
		parts[i].Items = append(parts[i].Items, item)
		parts[i].Total += item.Subtotal()
	}
	return parts
}

// CheckStock 校验每行数量不超过商品库存，返回第一个超卖的商品名
// 结账是全有或全无的：任何一行超卖则整体失败，不做部分提交
func CheckStock(items []CartItem) (string, bool) {
	for _, item := range items {
		if item.Product != nil && item.Quantity > item.Product.Stock {
			return item.Product.Name, false
		}
	}
	return "", true
}
