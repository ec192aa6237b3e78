package query

import (
	"fmt"
	"net/url"
)

// ==================== 资源键与标签 ====================
// 键是规范化的资源路径，标签是失效域。
// 每个变更声明它打掉哪些标签，读写两侧对齐在这张表上。

// 失效标签
const (
	TagProducts        = "products"         // 商品目录（列表/详情/分类）
	TagCart            = "cart"             // 购物车
	TagOrders          = "orders"           // 订单（买卖双方视角）
	TagSellerDashboard = "seller_dashboard" // 卖家面板
	TagWithdrawals     = "withdrawals"      // 提现（卖家与管理员视角）
	TagSellers         = "sellers"          // 卖家档案（管理员视角）
	TagUsers           = "users"            // 用户列表（管理员视角）
	TagAdminDashboard  = "admin_dashboard"  // 管理员面板
)

// ==================== 键构造 ====================
// 用户资料不走这层缓存：/auth/me 的快照由会话层持有

// KeyProducts 商品列表（参数规范化排序，避免同查询产生多个键）
func KeyProducts(params map[string]string) string {
	if len(params) == 0 {
		return "/products"
	}
	values := url.Values{}
	for k, v := range params {
		if v != "" {
			values.Set(k, v)
		}
	}
	if encoded := values.Encode(); encoded != "" {
		return "/products?" + encoded
	}
	return "/products"
}

// KeyProduct 商品详情
func KeyProduct(id string) string { return "/products/" + id }

// KeyCategories 分类列表
func KeyCategories() string { return "/products/categories" }

// KeyCart 购物车
func KeyCart() string { return "/orders/cart" }

// KeyOrders 订单列表
func KeyOrders() string { return "/orders" }

// KeyOrder 订单详情
func KeyOrder(id string) string { return "/orders/" + id }

// KeySellerDashboard 卖家面板
func KeySellerDashboard() string { return "/seller/dashboard" }

// KeySellerProducts 卖家商品
func KeySellerProducts() string { return "/seller/products" }

// KeySellerWithdrawals 卖家提现列表
func KeySellerWithdrawals() string { return "/seller/withdrawals" }

// KeyAdminDashboard 管理员面板
func KeyAdminDashboard() string { return "/admin/dashboard" }

// KeyAdminSellers 管理员卖家分页
func KeyAdminSellers(page, perPage int, status string) string {
	return fmt.Sprintf("/admin/sellers?page=%d&per_page=%d&status=%s", page, perPage, status)
}

// KeyAdminWithdrawals 管理员提现分页
func KeyAdminWithdrawals(page, perPage int, status string) string {
	return fmt.Sprintf("/admin/withdrawals?page=%d&per_page=%d&status=%s", page, perPage, status)
}

// KeyAdminUsers 管理员用户分页
func KeyAdminUsers(page, perPage int, role string) string {
	return fmt.Sprintf("/admin/users?page=%d&per_page=%d&role=%s", page, perPage, role)
}
