package repository

import (
	"context"
	"time"

	"marketfront_v1/internal/model"

	"gorm.io/gorm"
)

// ==================== MutationLogRepository 审计日志仓库 ====================

// MutationLogFilter 审计日志过滤条件
type MutationLogFilter struct {
	UserID    string
	Action    string
	Succeeded *bool
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// MutationLogRepository 变更审计日志
type MutationLogRepository interface {
	Create(ctx context.Context, entry *model.MutationLog) error
	List(ctx context.Context, filter MutationLogFilter) ([]model.MutationLog, int64, error)
	// DeleteBefore 清理指定时间之前的日志，返回删除行数
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

type mutationLogRepository struct {
	db *gorm.DB
}

// NewMutationLogRepository 创建审计日志仓库
func NewMutationLogRepository(db *gorm.DB) MutationLogRepository {
	return &mutationLogRepository{db: db}
}

func (r *mutationLogRepository) Create(ctx context.Context, entry *model.MutationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *mutationLogRepository) List(ctx context.Context, filter MutationLogFilter) ([]model.MutationLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.MutationLog{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.Succeeded != nil {
		query = query.Where("succeeded = ?", *filter.Succeeded)
	}
	if filter.StartDate != nil {
		query = query.Where("created_at >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("created_at <= ?", *filter.EndDate)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	pageSize := filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}

	var logs []model.MutationLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *mutationLogRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", before).
		Delete(&model.MutationLog{})
	return result.RowsAffected, result.Error
}
