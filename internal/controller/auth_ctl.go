package controller

import (
	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	session *session.Session
}

func NewAuthController(sess *session.Session) *AuthController {
	return &AuthController{session: sess}
}

// ==================== 会话接口 ====================

// Login 登录
// @Summary 用户名密码登录，建立本地会话
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录参数"
// @Success 200 {object} dto.LoginResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.session.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err, "登录失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    user,
	})
}

// Register 注册
// @Summary 注册买家或卖家账号，成功后自动登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册参数"
// @Success 201 {object} dto.RegisterResponse
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.session.Register(ctx, &req)
	if err != nil {
		respondError(c, err, "注册失败")
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    user,
	})
}

// Logout 登出
// @Summary 清除本地会话与持久化凭证
// @Tags Auth
// @Success 200 {object} dto.MessageResponse
// @Router /api/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	ctrl.session.Logout(c.Request.Context())
	c.JSON(200, gin.H{"code": 0, "message": "已登出"})
}

// Me 当前用户
// @Summary 获取当前会话用户
// @Tags Auth
// @Success 200 {object} model.User
// @Router /api/auth/me [get]
func (ctrl *AuthController) Me(c *gin.Context) {
	user := ctrl.session.CurrentUser()
	if user == nil {
		c.JSON(401, gin.H{"code": 401, "message": "当前未登录"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"user":  user,
			"state": ctrl.session.State(),
		},
	})
}

// UpdateProfile 更新个人资料
// @Summary 更新 email/phone/address，其余字段不可改
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.UpdateProfileRequest true "更新内容"
// @Success 200 {object} dto.UpdateProfileResponse
// @Router /api/auth/profile [put]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.session.UpdateUser(ctx, &req)
	if err != nil {
		respondError(c, err, "更新失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    user,
	})
}
