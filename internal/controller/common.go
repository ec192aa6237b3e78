package controller

import (
	"errors"

	"marketfront_v1/internal/model"
	"marketfront_v1/internal/service"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"

	"github.com/gin-gonic/gin"
)

// ==================== 错误映射 ====================

// 本地校验错误统一回 400，避免一次无谓的上游请求
var badRequestErrs = []error{
	model.ErrInvalidEmail,
	model.ErrInvalidRole,
	model.ErrInvalidPrice,
	model.ErrInvalidStock,
	model.ErrEmptyName,
	model.ErrEmptyCategory,
	model.ErrInvalidQuantity,
	model.ErrInvalidRating,
	model.ErrInvalidTransition,
	model.ErrShipmentIncomplete,
	model.ErrInvalidAmount,
	model.ErrInsufficientBalance,
	model.ErrInvalidMethod,
	service.ErrEmptyCart,
	service.ErrMissingShippingInfo,
	service.ErrInsufficientStock,
}

// respondError 把服务层错误翻译成 HTTP 响应
// 上游 API 错误原样透传状态码，本地错误按类别归档
func respondError(c *gin.Context, err error, action string) {
	var apiErr *rest.APIError
	switch {
	case errors.Is(err, session.ErrNotAuthenticated):
		c.JSON(401, gin.H{"code": 401, "message": err.Error()})
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrSellerPending):
		c.JSON(403, gin.H{"code": 403, "message": err.Error()})
	case errors.Is(err, service.ErrAlreadyReviewed):
		c.JSON(409, gin.H{"code": 409, "message": err.Error()})
	case errors.As(err, &apiErr):
		c.JSON(apiErr.Status, gin.H{"code": apiErr.Status, "message": apiErr.Message})
	case isBadRequest(err):
		c.JSON(400, gin.H{"code": 400, "message": err.Error()})
	default:
		c.JSON(500, gin.H{"code": 500, "message": action + ": " + err.Error()})
	}
}

func isBadRequest(err error) bool {
	for _, target := range badRequestErrs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
