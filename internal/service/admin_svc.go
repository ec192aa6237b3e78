package service

import (
	"context"
	"errors"
	"strconv"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"
)

// ==================== AdminService 管理员服务 ====================

var (
	// ErrAlreadyReviewed 审批对象已不在 pending 状态
	// 单发动作：对已审批对象重复操作按无效处理，不再打服务端
	ErrAlreadyReviewed = errors.New("该申请已被处理过")
)

// AdminService 平台面板与两条审批队列（卖家、提现）
type AdminService struct {
	api     *rest.Client
	cache   *query.Cache
	session *session.Session
	policy  *policy.Policy
}

// NewAdminService 创建管理员服务
func NewAdminService(api *rest.Client, cache *query.Cache, sess *session.Session, pol *policy.Policy) *AdminService {
	return &AdminService{api: api, cache: cache, session: sess, policy: pol}
}

// ==================== 面板与列表 ====================

// Dashboard 平台面板（指标 + 待审批队列）
func (s *AdminService) Dashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionAdminDashboard, policy.Resource{}) {
		return nil, ErrForbidden
	}

	data, err := s.cache.Get(ctx, query.KeyAdminDashboard(), query.Options{
		Tags: []string{query.TagAdminDashboard, query.TagSellers, query.TagWithdrawals},
	}, func(ctx context.Context) (interface{}, error) {
		var resp dto.AdminDashboardResponse
		if err := s.api.Get(ctx, "/admin/dashboard", nil, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*dto.AdminDashboardResponse), nil
}

// Sellers 卖家分页列表
func (s *AdminService) Sellers(ctx context.Context, q *dto.PageQuery) (*dto.SellerListResponse, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionApproveSeller, policy.Resource{}) {
		return nil, ErrForbidden
	}

	key := query.KeyAdminSellers(q.Page, q.PerPage, q.Status)
	data, err := s.cache.Get(ctx, key, query.Options{Tags: []string{query.TagSellers}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.SellerListResponse
		if err := s.api.Get(ctx, "/admin/sellers", pageParams(q), &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*dto.SellerListResponse), nil
}

// Withdrawals 提现分页列表
func (s *AdminService) Withdrawals(ctx context.Context, q *dto.PageQuery) (*dto.WithdrawalListResponse, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionReviewWithdraw, policy.Resource{}) {
		return nil, ErrForbidden
	}

	key := query.KeyAdminWithdrawals(q.Page, q.PerPage, q.Status)
	data, err := s.cache.Get(ctx, key, query.Options{Tags: []string{query.TagWithdrawals}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.WithdrawalListResponse
		if err := s.api.Get(ctx, "/admin/withdrawals", pageParams(q), &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*dto.WithdrawalListResponse), nil
}

// Users 用户分页列表
func (s *AdminService) Users(ctx context.Context, q *dto.PageQuery) (*dto.UserListResponse, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionListUsers, policy.Resource{}) {
		return nil, ErrForbidden
	}

	key := query.KeyAdminUsers(q.Page, q.PerPage, q.Role)
	data, err := s.cache.Get(ctx, key, query.Options{Tags: []string{query.TagUsers}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.UserListResponse
		if err := s.api.Get(ctx, "/admin/users", pageParams(q), &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*dto.UserListResponse), nil
}

// ==================== 卖家审批 ====================

// ApproveSeller 通过卖家审核（上游会写 verifiedAt）
// 本地已知该卖家不是 pending 时直接拒绝，避免重复审批；
// 本地不知道时放行，由服务端兜底
func (s *AdminService) ApproveSeller(ctx context.Context, sellerID string) (*model.Seller, error) {
	return s.reviewSeller(ctx, sellerID, "approve")
}

// RejectSeller 拒绝卖家审核
func (s *AdminService) RejectSeller(ctx context.Context, sellerID string) (*model.Seller, error) {
	return s.reviewSeller(ctx, sellerID, "reject")
}

func (s *AdminService) reviewSeller(ctx context.Context, sellerID, verb string) (*model.Seller, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionApproveSeller, policy.Resource{}) {
		return nil, ErrForbidden
	}
	if known := s.knownSeller(sellerID); known != nil && !known.CanReview() {
		return nil, ErrAlreadyReviewed
	}

	var resp dto.SellerResponse
	if err := s.api.Put(ctx, "/admin/sellers/"+sellerID+"/"+verb, nil, &resp); err != nil {
		return nil, err
	}

	// 过审解锁商品可购，商品目录也要跟着失效
	s.cache.InvalidateTags(query.TagSellers, query.TagAdminDashboard, query.TagProducts)
	return &resp.Seller, nil
}

// ==================== 提现审批 ====================

// ProcessWithdrawal 处理提现（可附 transactionId），终态
func (s *AdminService) ProcessWithdrawal(ctx context.Context, withdrawalID, transactionID string) (*model.Withdrawal, error) {
	return s.reviewWithdrawal(ctx, withdrawalID, "process", &dto.ProcessWithdrawalRequest{TransactionID: transactionID})
}

// RejectWithdrawal 拒绝提现，终态
func (s *AdminService) RejectWithdrawal(ctx context.Context, withdrawalID string) (*model.Withdrawal, error) {
	return s.reviewWithdrawal(ctx, withdrawalID, "reject", nil)
}

func (s *AdminService) reviewWithdrawal(ctx context.Context, withdrawalID, verb string, body interface{}) (*model.Withdrawal, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionReviewWithdraw, policy.Resource{}) {
		return nil, ErrForbidden
	}
	if known := s.knownWithdrawal(withdrawalID); known != nil && !known.CanReview() {
		return nil, ErrAlreadyReviewed
	}

	var resp dto.WithdrawalResponse
	if err := s.api.Put(ctx, "/admin/withdrawals/"+withdrawalID+"/"+verb, body, &resp); err != nil {
		return nil, err
	}

	s.cache.InvalidateTags(query.TagWithdrawals, query.TagAdminDashboard, query.TagSellerDashboard)
	return &resp.Withdrawal, nil
}

// ==================== 内部 ====================

// knownSeller 从缓存的面板里找该卖家的已知状态（冷缓存返回 nil）
func (s *AdminService) knownSeller(sellerID string) *model.Seller {
	data, ok := s.cache.Peek(query.KeyAdminDashboard())
	if !ok {
		return nil
	}
	dashboard := data.(*dto.AdminDashboardResponse)
	for i := range dashboard.PendingApprovals.Sellers {
		if dashboard.PendingApprovals.Sellers[i].ID == sellerID {
			return &dashboard.PendingApprovals.Sellers[i]
		}
	}
	return nil
}

func (s *AdminService) knownWithdrawal(withdrawalID string) *model.Withdrawal {
	data, ok := s.cache.Peek(query.KeyAdminDashboard())
	if !ok {
		return nil
	}
	dashboard := data.(*dto.AdminDashboardResponse)
	for i := range dashboard.PendingApprovals.Withdrawals {
		if dashboard.PendingApprovals.Withdrawals[i].ID == withdrawalID {
			return &dashboard.PendingApprovals.Withdrawals[i]
		}
	}
	return nil
}

func pageParams(q *dto.PageQuery) map[string]string {
	params := map[string]string{}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.PerPage > 0 {
		params["per_page"] = strconv.Itoa(q.PerPage)
	}
	if q.Status != "" {
		params["status"] = q.Status
	}
	if q.Role != "" {
		params["role"] = q.Role
	}
	return params
}
