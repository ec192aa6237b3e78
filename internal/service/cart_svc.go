package service

import (
	"context"
	"errors"
	"fmt"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"
)

// ==================== CartService 购物车与结账 ====================

var (
	ErrEmptyCart           = errors.New("购物车是空的")
	ErrMissingShippingInfo = errors.New("收货地址和配送方式必填")
	// 文案与上游服务端保持一致，前端按同一格式展示
	ErrInsufficientStock = errors.New("Insufficient stock for")
)

// CartService 购物车 CRUD 与结账转换
type CartService struct {
	api     *rest.Client
	cache   *query.Cache
	session *session.Session
	policy  *policy.Policy
}

// NewCartService 创建购物车服务
func NewCartService(api *rest.Client, cache *query.Cache, sess *session.Session, pol *policy.Policy) *CartService {
	return &CartService{api: api, cache: cache, session: sess, policy: pol}
}

// ==================== 购物车 CRUD ====================

// GetCart 当前购物车
// 后台读：未登录撞 401 时按空车处理，不往外抛认证错误
func (s *CartService) GetCart(ctx context.Context) ([]model.CartItem, error) {
	return s.getCart(ctx, true)
}

// getCart 读购物车，nilOn401 控制 401 是否降级为空车
// 结账这种用户主动发起的变更必须关掉降级，认证错误照常上抛
func (s *CartService) getCart(ctx context.Context, nilOn401 bool) ([]model.CartItem, error) {
	data, err := s.cache.Get(ctx, query.KeyCart(), query.Options{
		Tags:     []string{query.TagCart},
		NilOn401: nilOn401,
	}, func(ctx context.Context) (interface{}, error) {
		var resp dto.CartResponse
		if err := s.api.Get(ctx, "/orders/cart", nil, &resp); err != nil {
			return nil, err
		}
		return resp.Items, nil
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return data.([]model.CartItem), nil
}

// AddItem 加购
// 同一商品重复加购由服务端在已有行上累加数量，客户端不插重复行
func (s *CartService) AddItem(ctx context.Context, productID string, quantity int) error {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionManageCart, policy.Resource{}) {
		return ErrForbidden
	}
	if quantity <= 0 {
		return model.ErrInvalidQuantity
	}

	err := s.api.Post(ctx, "/orders/cart", dto.AddCartItemRequest{
		ProductID: productID,
		Quantity:  quantity,
	}, nil)
	if err != nil {
		return err
	}

	s.cache.InvalidateTags(query.TagCart)
	return nil
}

// UpdateItem 改数量，quantity <= 0 等价删行（上游语义）
func (s *CartService) UpdateItem(ctx context.Context, itemID string, quantity int) error {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionManageCart, policy.Resource{}) {
		return ErrForbidden
	}

	err := s.api.Put(ctx, "/orders/cart/"+itemID, dto.UpdateCartItemRequest{Quantity: quantity}, nil)
	if err != nil {
		return err
	}

	s.cache.InvalidateTags(query.TagCart)
	return nil
}

// RemoveItem 删行
func (s *CartService) RemoveItem(ctx context.Context, itemID string) error {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionManageCart, policy.Resource{}) {
		return ErrForbidden
	}

	if err := s.api.Delete(ctx, "/orders/cart/"+itemID, nil); err != nil {
		return err
	}

	s.cache.InvalidateTags(query.TagCart)
	return nil
}

// ==================== 结账 ====================

// Preview 结账预览：按卖家分单、行价冻结为当前快照价
func (s *CartService) Preview(ctx context.Context) (*dto.CheckoutPreview, error) {
	items, err := s.GetCart(ctx)
	if err != nil {
		return nil, err
	}

	partitions := model.PartitionBySeller(items)
	preview := &dto.CheckoutPreview{Partitions: partitions}
	for _, p := range partitions {
		preview.GrandTotal += p.Total
	}
	for _, item := range items {
		preview.ItemCount += item.Quantity
	}
	return preview, nil
}

// Checkout 结账：购物车按卖家拆成多张订单
// 全有或全无：任何一行超卖则整体失败，本地不做任何部分提交或重试；
// 失败时购物车原样保留，服务端错误文案原样上抛
func (s *CartService) Checkout(ctx context.Context, req *dto.CheckoutRequest) ([]model.Order, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionCheckout, policy.Resource{}) {
		return nil, ErrForbidden
	}
	if req.ShippingAddress == "" || req.Method == "" {
		return nil, ErrMissingShippingInfo
	}

	items, err := s.getCart(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// 发送前的库存预检，早失败省一次往返；权威校验仍在服务端
	if name, ok := model.CheckStock(items); !ok {
		return nil, fmt.Errorf("%w %s", ErrInsufficientStock, name)
	}

	var resp dto.CheckoutResponse
	if err := s.api.Post(ctx, "/orders/checkout", req, &resp); err != nil {
		return nil, err
	}

	// 成功后：车空了、订单多了、库存变了、卖家面板的数字也变了
	s.cache.InvalidateTags(query.TagCart, query.TagOrders, query.TagProducts, query.TagSellerDashboard, query.TagAdminDashboard)
	return resp.Orders, nil
}
