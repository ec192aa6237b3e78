package repository

import (
	"context"
	"errors"

	"marketfront_v1/internal/model"

	"gorm.io/gorm"
)

// ==================== CredentialRepository 凭证仓库 ====================

// CredentialRepository 持久化会话凭证，进程内只有一个槽位
// 语义等价于浏览器 localStorage 里的那一个 access_token
type CredentialRepository interface {
	// Load 读出当前凭证，不存在时返回 (nil, nil)
	Load(ctx context.Context) (*model.Credential, error)
	// Save 写入凭证（覆盖旧的）
	Save(ctx context.Context, token, username string) error
	// Clear 清除凭证
	Clear(ctx context.Context) error
}

type credentialRepository struct {
	db *gorm.DB
}

// NewCredentialRepository 创建凭证仓库
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Load(ctx context.Context) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.WithContext(ctx).Order("id DESC").First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) Save(ctx context.Context, token, username string) error {
	// 单槽位：先清旧再写新，保证表里最多一行
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Credential{}).Error; err != nil {
			return err
		}
		return tx.Create(&model.Credential{Token: token, Username: username}).Error
	})
}

func (r *credentialRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Credential{}).Error
}
