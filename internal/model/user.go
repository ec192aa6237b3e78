package model

import (
	"errors"
	"regexp"
	"time"
)

// ==================== 用户角色常量 ====================

// UserRole 平台角色
const (
	RoleBuyer  = "buyer"  // 买家
	RoleSeller = "seller" // 卖家
	RoleAdmin  = "admin"  // 管理员
)

// ValidRoles 注册时允许的角色（admin 不开放注册）
var ValidRoles = []string{RoleBuyer, RoleSeller}

// ==================== User 用户 ====================

// User 平台用户（上游 API 的 wire 结构）
// 角色创建后不可变更，上游没有暴露改角色的操作
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// 卖家角色时附带的档案（GET /auth/me 返回）
	SellerProfile *Seller `json:"sellerProfile,omitempty"`
}

// IsBuyer 是否买家
func (u *User) IsBuyer() bool { return u.Role == RoleBuyer }

// IsSeller 是否卖家
func (u *User) IsSeller() bool { return u.Role == RoleSeller }

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ==================== 校验 ====================

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrInvalidEmail = errors.New("邮箱格式无效")
	ErrInvalidRole  = errors.New("角色无效")
)

// ValidateEmail 校验邮箱格式（与服务端相同的正则）
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateRegisterRole 校验注册角色
func ValidateRegisterRole(role string) error {
	for _, r := range ValidRoles {
		if role == r {
			return nil
		}
	}
	return ErrInvalidRole
}
