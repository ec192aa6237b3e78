package service

import (
	"context"
	"fmt"
	"log"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"
)

// ==================== SellerService 卖家服务 ====================

// SellerService 卖家面板、提现、资质认证
type SellerService struct {
	api     *rest.Client
	cache   *query.Cache
	session *session.Session
	policy  *policy.Policy
	storage *StorageService
}

// NewSellerService 创建卖家服务
func NewSellerService(api *rest.Client, cache *query.Cache, sess *session.Session, pol *policy.Policy, storage *StorageService) *SellerService {
	return &SellerService{api: api, cache: cache, session: sess, policy: pol, storage: storage}
}

// ==================== 面板 ====================

// Dashboard 卖家面板
// 余额口径跟订单和提现都联动，所以挂三个失效标签
func (s *SellerService) Dashboard(ctx context.Context) (*dto.SellerDashboardResponse, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionSellerDashboard, policy.Resource{}) {
		return nil, ErrForbidden
	}

	data, err := s.cache.Get(ctx, query.KeySellerDashboard(), query.Options{
		Tags: []string{query.TagSellerDashboard, query.TagOrders, query.TagWithdrawals},
	}, func(ctx context.Context) (interface{}, error) {
		var resp dto.SellerDashboardResponse
		if err := s.api.Get(ctx, "/seller/dashboard", nil, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*dto.SellerDashboardResponse), nil
}

// Products 卖家自己的商品（含未过审卖家的）
func (s *SellerService) Products(ctx context.Context) ([]model.Product, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionSellerDashboard, policy.Resource{}) {
		return nil, ErrForbidden
	}

	data, err := s.cache.Get(ctx, query.KeySellerProducts(), query.Options{Tags: []string{query.TagProducts}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.SellerProductsResponse
		if err := s.api.Get(ctx, "/seller/products", nil, &resp); err != nil {
			return nil, err
		}
		return resp.Products, nil
	})
	if err != nil {
		return nil, err
	}
	return data.([]model.Product), nil
}

// ==================== 提现 ====================

// Withdrawals 提现历史
func (s *SellerService) Withdrawals(ctx context.Context) ([]model.Withdrawal, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionSellerDashboard, policy.Resource{}) {
		return nil, ErrForbidden
	}

	data, err := s.cache.Get(ctx, query.KeySellerWithdrawals(), query.Options{Tags: []string{query.TagWithdrawals}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.WithdrawalsResponse
		if err := s.api.Get(ctx, "/seller/withdrawals", nil, &resp); err != nil {
			return nil, err
		}
		return resp.Withdrawals, nil
	})
	if err != nil {
		return nil, err
	}
	return data.([]model.Withdrawal), nil
}

// PreviewWithdrawal 提现预览
// 展示口径与服务端同一公式：amountPaid = round(amount × 0.93, 2)
func (s *SellerService) PreviewWithdrawal(amount float64) *dto.WithdrawalPreview {
	net := model.NetAmount(amount)
	return &dto.WithdrawalPreview{
		AmountRequested: amount,
		AmountPaid:      net,
		PlatformFee:     amount - net,
		FeeRate:         model.PlatformFeeRate,
	}
}

// RequestWithdrawal 发起提现，产生一条 pending 的提现请求
// 预检金额区间 (0, pendingBalance]；被拒绝的请求不可重试，只能新建
func (s *SellerService) RequestWithdrawal(ctx context.Context, req *dto.CreateWithdrawalRequest) (*model.Withdrawal, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionWithdraw, policy.Resource{}) {
		return nil, ErrForbidden
	}

	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	if err := model.ValidateWithdrawal(req.Amount, dashboard.Metrics.PendingBalance, req.Method); err != nil {
		return nil, err
	}

	var resp dto.WithdrawalResponse
	if err := s.api.Post(ctx, "/seller/withdrawals", req, &resp); err != nil {
		return nil, err
	}

	s.cache.InvalidateTags(query.TagWithdrawals, query.TagSellerDashboard, query.TagAdminDashboard)
	return &resp.Withdrawal, nil
}

// ==================== 资质认证 ====================

// UploadDocuments 上传认证材料，返回公开地址
func (s *SellerService) UploadDocuments(ctx context.Context, data []byte, filename string) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("存储服务未配置")
	}
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionVerifySeller, policy.Resource{}) {
		return "", ErrForbidden
	}
	return s.storage.Upload(ctx, data, filename, "")
}

// SubmitVerification 提交认证材料（documents 为材料地址或描述）
func (s *SellerService) SubmitVerification(ctx context.Context, documents string) (*model.Seller, error) {
	if !s.policy.CanPerform(s.session.CurrentUser(), policy.ActionVerifySeller, policy.Resource{}) {
		return nil, ErrForbidden
	}

	var resp dto.SellerResponse
	err := s.api.Post(ctx, "/seller/verification", dto.SubmitVerificationRequest{Documents: documents}, &resp)
	if err != nil {
		return nil, err
	}

	// 档案变了，me 里的 sellerProfile 跟着刷新；
	// 提交本身已经成功，刷新失败不回报错误，下次读 me 会补上
	if err := s.session.RefreshProfile(ctx); err != nil {
		log.Printf("[Seller] 提交认证后刷新档案失败: %v", err)
	}
	s.cache.InvalidateTags(query.TagSellers)
	return &resp.Seller, nil
}
