package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"
)

// ==================== ProductService 商品服务 ====================

var (
	ErrForbidden     = errors.New("当前角色无权执行该操作")
	ErrSellerPending = errors.New("卖家尚未通过审核，不能发布商品")
)

// ProductService 商品浏览与卖家商品管理
type ProductService struct {
	api     *rest.Client
	cache   *query.Cache
	session *session.Session
	policy  *policy.Policy
	storage *StorageService
}

// NewProductService 创建商品服务
func NewProductService(api *rest.Client, cache *query.Cache, sess *session.Session, pol *policy.Policy, storage *StorageService) *ProductService {
	return &ProductService{api: api, cache: cache, session: sess, policy: pol, storage: storage}
}

// ==================== 浏览（无需登录） ====================

// ListProducts 商品列表，分类/搜索/排序透传给上游
func (s *ProductService) ListProducts(ctx context.Context, q *dto.ProductListQuery) (*dto.ProductListResponse, error) {
	params := map[string]string{
		"category": q.Category,
		"search":   q.Search,
		"sort":     q.Sort,
	}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.PerPage > 0 {
		params["per_page"] = strconv.Itoa(q.PerPage)
	}

	key := query.KeyProducts(params)
	data, err := s.cache.Get(ctx, key, query.Options{Tags: []string{query.TagProducts}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.ProductListResponse
		if err := s.api.Get(ctx, "/products", params, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*dto.ProductListResponse), nil
}

// GetProduct 商品详情（含评价）
func (s *ProductService) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	data, err := s.cache.Get(ctx, query.KeyProduct(id), query.Options{Tags: []string{query.TagProducts}}, func(ctx context.Context) (interface{}, error) {
		var product model.Product
		if err := s.api.Get(ctx, "/products/"+id, nil, &product); err != nil {
			return nil, err
		}
		return &product, nil
	})
	if err != nil {
		return nil, err
	}
	return data.(*model.Product), nil
}

// GetCategories 分类列表
func (s *ProductService) GetCategories(ctx context.Context) ([]string, error) {
	data, err := s.cache.Get(ctx, query.KeyCategories(), query.Options{Tags: []string{query.TagProducts}}, func(ctx context.Context) (interface{}, error) {
		var resp dto.CategoriesResponse
		if err := s.api.Get(ctx, "/products/categories", nil, &resp); err != nil {
			return nil, err
		}
		return resp.Categories, nil
	})
	if err != nil {
		return nil, err
	}
	return data.([]string), nil
}

// ==================== 卖家商品管理 ====================

// CreateProduct 卖家新建商品
func (s *ProductService) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	user := s.session.CurrentUser()
	if !s.policy.CanPerform(user, policy.ActionManageProduct, policy.Resource{}) {
		return nil, ErrForbidden
	}
	if user.SellerProfile != nil && !user.SellerProfile.IsApproved() {
		return nil, ErrSellerPending
	}
	if err := model.ValidateProduct(req.Name, req.Category, req.Price, req.Stock); err != nil {
		return nil, err
	}

	var resp dto.ProductResponse
	if err := s.api.Post(ctx, "/products", req, &resp); err != nil {
		return nil, err
	}

	s.cache.InvalidateTags(query.TagProducts, query.TagSellerDashboard)
	return &resp.Product, nil
}

// UpdateProduct 卖家更新商品（部分字段）
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *dto.UpdateProductRequest) (*model.Product, error) {
	user := s.session.CurrentUser()
	if !s.policy.CanPerform(user, policy.ActionManageProduct, policy.Resource{}) {
		return nil, ErrForbidden
	}
	if req.Price != nil && *req.Price <= 0 {
		return nil, model.ErrInvalidPrice
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, model.ErrInvalidStock
	}

	var resp dto.ProductResponse
	if err := s.api.Put(ctx, "/products/"+id, req, &resp); err != nil {
		return nil, err
	}

	s.cache.InvalidateTags(query.TagProducts, query.TagSellerDashboard, query.TagCart)
	return &resp.Product, nil
}

// DeleteProduct 卖家删除商品
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	user := s.session.CurrentUser()
	if !s.policy.CanPerform(user, policy.ActionManageProduct, policy.Resource{}) {
		return ErrForbidden
	}

	if err := s.api.Delete(ctx, "/products/"+id, nil); err != nil {
		return err
	}

	s.cache.InvalidateTags(query.TagProducts, query.TagSellerDashboard, query.TagCart)
	return nil
}

// UploadProductImage 上传商品图，返回可写进 imageUrl 的公开地址
func (s *ProductService) UploadProductImage(ctx context.Context, data []byte, filename string) (string, error) {
	if s.storage == nil {
		return "", fmt.Errorf("存储服务未配置")
	}
	user := s.session.CurrentUser()
	if !s.policy.CanPerform(user, policy.ActionManageProduct, policy.Resource{}) {
		return "", ErrForbidden
	}
	return s.storage.UploadProductImage(ctx, data, filename)
}

// ==================== 评价 ====================

// AddReview 买家提交商品评价
func (s *ProductService) AddReview(ctx context.Context, productID string, req *dto.CreateReviewRequest) error {
	user := s.session.CurrentUser()
	if !s.policy.CanPerform(user, policy.ActionReviewProduct, policy.Resource{}) {
		return ErrForbidden
	}
	if err := model.ValidateRating(req.Rating); err != nil {
		return err
	}

	if err := s.api.Post(ctx, "/products/"+productID+"/reviews", req, nil); err != nil {
		return err
	}

	// 商品详情携带评价列表，打掉后重取
	s.cache.Invalidate(query.KeyProduct(productID))
	return nil
}
