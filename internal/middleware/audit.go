package middleware

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"marketfront_v1/internal/model"
	"marketfront_v1/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ==================== 变更审计中间件 ====================

// maxAuditBody 记录的请求体上限，超长截断
const maxAuditBody = 4096

// MutationAudit 写操作审计中间件
// 把每次写请求（谁、做了什么、对哪个资源、成败）落到本地审计表，
// 审计失败只打日志，不影响业务请求
func MutationAudit(logs repository.MutationLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 只审计写操作
		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			c.Next()
			return
		}

		payload := captureBody(c)

		c.Next()

		status := c.Writer.Status()
		entry := &model.MutationLog{
			ID:        uuid.New().String(),
			UserID:    GetUserID(c),
			Username:  GetUsername(c),
			Role:      GetUserRole(c),
			Action:    c.Request.Method,
			Resource:  c.FullPath(),
			Payload:   datatypes.JSON(payload),
			Succeeded: status < 400,
		}
		if status >= 400 {
			entry.Error = fmt.Sprintf("HTTP %d", status)
		}

		if err := logs.Create(c.Request.Context(), entry); err != nil {
			log.Printf("[Audit] 写入审计日志失败: %v", err)
		}
	}
}

// captureBody 读出请求体并原样放回
// 超长请求体不入库，截断会破坏 JSON 列
func captureBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	if len(body) == 0 || len(body) > maxAuditBody {
		return nil
	}
	return body
}
