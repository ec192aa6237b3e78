package model

import (
	"errors"
	"time"
)

// ==================== Review 评价 ====================

// Review 商品评价，rating 取值 1~5
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`

	// 详情接口附带的评价人用户名
	User string `json:"user,omitempty"`
}

var ErrInvalidRating = errors.New("评分必须在 1 到 5 之间")

// ValidateRating 校验评分范围
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
