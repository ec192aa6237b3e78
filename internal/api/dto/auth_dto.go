package dto

import "marketfront_v1/internal/model"

// ==================== 认证相关 DTO ====================

// LoginRequest POST /auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken string     `json:"access_token"`
	User        model.User `json:"user"`
}

// RegisterRequest POST /auth/register
// role=seller 时必须携带 businessName，上游会同时建 pending 卖家档案
type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Role         string `json:"role" binding:"required"`
	BusinessName string `json:"businessName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

// UpdateProfileRequest PUT /auth/profile
// 只允许改 email/phone/address，上游忽略其他字段
type UpdateProfileRequest struct {
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// UpdateProfileResponse 资料更新响应
type UpdateProfileResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}
