package policy

import (
	"marketfront_v1/internal/model"
)

// ==================== 授权策略 ====================
// 全部角色判断收口在这一个模块：视图、中间件、服务统一调
// CanPerform，不在各处散落 if role == "..." 分支。
// 注意：这只是 UX 层面的预检，权威的授权永远在服务端。

// Action 动作
type Action string

const (
	ActionBrowseProducts  Action = "products.browse"
	ActionManageProduct   Action = "products.manage"
	ActionReviewProduct   Action = "products.review"
	ActionManageCart      Action = "cart.manage"
	ActionCheckout        Action = "cart.checkout"
	ActionViewOrder       Action = "orders.view"
	ActionAdvanceOrder    Action = "orders.advance"
	ActionSellerDashboard Action = "seller.dashboard"
	ActionWithdraw        Action = "seller.withdraw"
	ActionVerifySeller    Action = "seller.verify"
	ActionAdminDashboard  Action = "admin.dashboard"
	ActionApproveSeller   Action = "admin.approve_seller"
	ActionReviewWithdraw  Action = "admin.review_withdrawal"
	ActionListUsers       Action = "admin.list_users"
)

// Resource 动作目标，空值表示与具体资源无关
type Resource struct {
	// OwnerUserID 资源归属的用户（订单的 buyerId 等）
	OwnerUserID string
	// SellerID 资源归属的卖家档案
	SellerID string
}

// ==================== 配置 ====================

// DeliveredAuthority in_transit → delivered 的操作方
// 上游没有把这个边界定死，按可配置策略处理，默认管理员
type DeliveredAuthority string

const (
	DeliveredByAdmin  DeliveredAuthority = "admin"
	DeliveredBySeller DeliveredAuthority = "seller"
)

// Policy 策略实例
type Policy struct {
	deliveredBy DeliveredAuthority
}

// New 创建策略，authority 为空时默认 admin
func New(authority DeliveredAuthority) *Policy {
	if authority == "" {
		authority = DeliveredByAdmin
	}
	return &Policy{deliveredBy: authority}
}

// ==================== 判定 ====================

// CanPerform 判断用户能否对资源执行动作
func (p *Policy) CanPerform(user *model.User, action Action, res Resource) bool {
	// 商品浏览不要求登录
	if action == ActionBrowseProducts {
		return true
	}
	if user == nil {
		return false
	}

	switch action {
	case ActionManageCart, ActionCheckout, ActionReviewProduct:
		return user.IsBuyer()

	case ActionManageProduct:
		// 只有归属卖家能动自己的商品
		if !user.IsSeller() || user.SellerProfile == nil {
			return false
		}
		return res.SellerID == "" || res.SellerID == user.SellerProfile.ID

	case ActionViewOrder:
		if user.IsAdmin() {
			return true
		}
		if user.IsBuyer() {
			return res.OwnerUserID == "" || res.OwnerUserID == user.ID
		}
		if user.IsSeller() && user.SellerProfile != nil {
			return res.SellerID == "" || res.SellerID == user.SellerProfile.ID
		}
		return false

	case ActionSellerDashboard, ActionVerifySeller:
		return user.IsSeller()

	case ActionWithdraw:
		// 提现要求卖家已通过审核
		return user.IsSeller() && user.SellerProfile != nil && user.SellerProfile.IsApproved()

	case ActionAdminDashboard, ActionApproveSeller, ActionReviewWithdraw, ActionListUsers:
		return user.IsAdmin()
	}

	return false
}

// CanTransitionOrder 状态流转的角色边界
// 卖家只推进自己订单的 pending→processing 和 processing→shipped；
// shipped→in_transit 跟随发货方；in_transit→delivered 按配置的操作方；
// 取消只允许卖家或管理员在 pending/processing 阶段发起
func (p *Policy) CanTransitionOrder(user *model.User, order *model.Order, to string) bool {
	if user == nil {
		return false
	}

	ownSeller := user.IsSeller() && user.SellerProfile != nil &&
		order.SellerID == user.SellerProfile.ID

	switch to {
	case model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusInTransit:
		return ownSeller || user.IsAdmin()
	case model.OrderStatusDelivered:
		if p.deliveredBy == DeliveredBySeller {
			return ownSeller || user.IsAdmin()
		}
		return user.IsAdmin()
	case model.OrderStatusCancelled:
		return ownSeller || user.IsAdmin()
	}
	return false
}

// RequiredRole 视图级的角色门槛（路由中间件用）
func RequiredRole(action Action) string {
	switch action {
	case ActionManageCart, ActionCheckout, ActionReviewProduct:
		return model.RoleBuyer
	case ActionSellerDashboard, ActionWithdraw, ActionVerifySeller, ActionManageProduct:
		return model.RoleSeller
	case ActionAdminDashboard, ActionApproveSeller, ActionReviewWithdraw, ActionListUsers:
		return model.RoleAdmin
	}
	return ""
}
