package service

import (
	"context"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单查询与状态推进
// 买家只读；卖家推进自己订单的前两步；签收操作方由策略配置
type OrderService struct {
	api     *rest.Client
	cache   *query.Cache
	session *session.Session
	policy  *policy.Policy
}

// NewOrderService 创建订单服务
func NewOrderService(api *rest.Client, cache *query.Cache, sess *session.Session, pol *policy.Policy) *OrderService {
	return &OrderService{api: api, cache: cache, session: sess, policy: pol}
}

// ==================== 查询 ====================

// ListOrders 订单列表，上游按当前角色过滤（买家看自己买的，
// 卖家看自己卖的，管理员看全部）
func (s *OrderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	data, err := s.cache.Get(ctx, query.KeyOrders(), query.Options{Tags: []string{query.TagOrders}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.OrdersResponse
		if err := s.api.Get(ctx, "/orders", nil, &resp); err != nil {
			return nil, err
		}
		return resp.Orders, nil
	})
	if err != nil {
		return nil, err
	}
	return data.([]model.Order), nil
}

// GetOrder 订单详情
func (s *OrderService) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	data, err := s.cache.Get(ctx, query.KeyOrder(id), query.Options{Tags: []string{query.TagOrders}}, func(ctx context.Context) (interface{}, error) {
		var order model.Order
		if err := s.api.Get(ctx, "/orders/"+id, nil, &order); err != nil {
			return nil, err
		}
		return &order, nil
	})
	if err != nil {
		return nil, err
	}

	order := data.(*model.Order)
	user := s.session.CurrentUser()
	if !s.policy.CanPerform(user, policy.ActionViewOrder, policy.Resource{
		OwnerUserID: order.BuyerID,
		SellerID:    order.SellerID,
	}) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ==================== 状态推进 ====================

// UpdateStatus 推进订单状态
// 发送前本地完整校验：流转合法性（单向链 + 取消窗口）、
// shipped 的承运商/运单号原子性、操作角色边界；任一不过直接拒发
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateOrderStatusRequest) (*model.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := model.ValidateTransition(order.Status, req.Status, req.Carrier, req.TrackingNumber); err != nil {
		return nil, err
	}
	if !s.policy.CanTransitionOrder(s.session.CurrentUser(), order, req.Status) {
		return nil, ErrForbidden
	}

	var resp dto.OrderUpdateResponse
	if err := s.api.Put(ctx, "/orders/"+id+"/status", req, &resp); err != nil {
		return nil, err
	}

	// 订单推进牵动双方面板（delivered 改变卖家可提现余额）
	s.cache.InvalidateTags(query.TagOrders, query.TagSellerDashboard, query.TagAdminDashboard)
	return &resp.Order, nil
}
