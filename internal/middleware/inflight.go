package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// ==================== 单发动作守卫 ====================

// InflightGuard 按 key 记录正在执行的写操作
// 同一个用户对同一个动作的并发第二次请求直接回 409，
// 等第一次落定（成功或失败）后才放行下一次
type InflightGuard struct {
	mu     sync.Mutex
	active map[string]bool
}

func NewInflightGuard() *InflightGuard {
	return &InflightGuard{active: make(map[string]bool)}
}

// TryAcquire 尝试占用 key，已被占用时返回 false
func (g *InflightGuard) TryAcquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active[key] {
		return false
	}
	g.active[key] = true
	return true
}

// Release 释放 key
func (g *InflightGuard) Release(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.active, key)
}

// 全局守卫
var defaultGuard = NewInflightGuard()

// GetGuard 获取全局守卫
func GetGuard() *InflightGuard { return defaultGuard }

// ==================== Gin 中间件 ====================

// SingleShot 单发写操作中间件
// 按"用户 + 动作名 + 目标ID"做并发互斥，重复提交回 409
//
// 使用示例:
//
//	admin.PUT("/withdrawals/:id/process",
//	    middleware.SingleShot("withdrawal_review"),
//	    adminCtl.ProcessWithdrawal,
//	)
func SingleShot(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := inflightKey(c, action)

		if !defaultGuard.TryAcquire(key) {
			c.JSON(http.StatusConflict, gin.H{
				"code":    409,
				"message": "操作正在处理中，请勿重复提交",
			})
			c.Abort()
			return
		}
		defer defaultGuard.Release(key)

		c.Next()
	}
}

// inflightKey 互斥维度：用户 + 动作 + 路径上的目标ID
func inflightKey(c *gin.Context, action string) string {
	id := c.Param("id")
	if id == "" {
		id = c.Param("itemId")
	}
	return fmt.Sprintf("%s:%s:%s", GetUserID(c), action, id)
}
