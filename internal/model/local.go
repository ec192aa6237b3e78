package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 本地持久化模型 ====================
// 本进程只落两类本地数据：凭证（等价于浏览器 localStorage 里那一个
// token 槽位）和变更审计日志。业务数据一律走上游 API，不做本地镜像。

// Credential 持久化的会话凭证，单行表
type Credential struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Token     string `gorm:"type:text;not null"`
	Username  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Credential) TableName() string { return "credentials" }

// MutationLog 变更审计日志
// 每个发往上游的写操作（成功或失败）记一行，payload 存请求摘要
type MutationLog struct {
	ID        string         `gorm:"primaryKey;size:36"`
	UserID    string         `gorm:"size:36;index"`
	Username  string         `gorm:"size:100"`
	Role      string         `gorm:"size:20"`
	Action    string         `gorm:"size:64;index"` // HTTP 方法，如 POST、DELETE
	Resource  string         `gorm:"size:128"`      // 路由模板，如 /products/:id
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	Succeeded bool
	Error     string         `gorm:"type:text"`
	CreatedAt time.Time      `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (MutationLog) TableName() string { return "mutation_logs" }
