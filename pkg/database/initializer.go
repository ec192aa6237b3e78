package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 本地数据库初始化 ====================
// 默认 sqlite 单文件（客户端进程的本地状态），给了 DSN 就切 postgres。

// Options 初始化选项
type Options struct {
	// SQLitePath sqlite 文件路径，默认 marketfront.db
	SQLitePath string
	// PostgresDSN 非空时使用 PostgreSQL
	PostgresDSN string
	// Silent 静默 GORM 日志（测试用）
	Silent bool
}

// Open 打开数据库连接
func Open(opts Options) (*gorm.DB, error) {
	logMode := logger.Warn
	if opts.Silent {
		logMode = logger.Silent
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logMode)}

	if opts.PostgresDSN != "" {
		db, err := gorm.Open(postgres.Open(opts.PostgresDSN), cfg)
		if err != nil {
			return nil, fmt.Errorf("PostgreSQL 连接失败: %w", err)
		}
		return db, nil
	}

	path := opts.SQLitePath
	if path == "" {
		path = "marketfront.db"
	}
	db, err := gorm.Open(sqlite.Open(path), cfg)
	if err != nil {
		return nil, fmt.Errorf("SQLite 打开失败: %w", err)
	}
	return db, nil
}

// InitDB 打开连接并 AutoMigrate 本地表
func InitDB(opts Options, models ...interface{}) *gorm.DB {
	start := time.Now()

	db, err := Open(opts)
	if err != nil {
		log.Fatalf("[DB] %v", err)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("[DB] AutoMigrate 失败: %v", err)
		}
	}

	log.Printf("[DB] 初始化完成，耗时 %v", time.Since(start))
	return db
}
