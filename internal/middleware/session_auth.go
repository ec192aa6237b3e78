package middleware

import (
	"net/http"

	"marketfront_v1/internal/model"
	"marketfront_v1/internal/session"

	"github.com/gin-gonic/gin"
)

// ==================== 会话中间件 ====================

// Context Keys
const (
	ContextKeyUser     = "session_user"
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// SessionAuth 会话认证中间件
// 要求本地会话处于已登录状态，并把当前用户注入 Context
func SessionAuth(sess *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := sess.CurrentUser()
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "当前未登录",
			})
			c.Abort()
			return
		}

		c.Set(ContextKeyUser, user)
		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Set(ContextKeyRole, user.Role)

		c.Next()
	}
}

// RequireRole 角色校验中间件，跟在 SessionAuth 后面用
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyRole)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未获取到用户角色",
			})
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "无权限访问",
		})
		c.Abort()
	}
}

// ==================== 辅助函数 ====================

// GetSessionUser 从 Context 获取当前用户
func GetSessionUser(c *gin.Context) *model.User {
	if u, exists := c.Get(ContextKeyUser); exists {
		return u.(*model.User)
	}
	return nil
}

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(string)
	}
	return ""
}

// GetUsername 从 Context 获取用户名
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		return name.(string)
	}
	return ""
}

// GetUserRole 从 Context 获取用户角色
func GetUserRole(c *gin.Context) string {
	if role, exists := c.Get(ContextKeyRole); exists {
		return role.(string)
	}
	return ""
}
