package task

import (
	"context"
	"log"
	"time"

	"marketfront_v1/internal/repository"

	"github.com/robfig/cron/v3"
)

// AuditCleanupTask 审计日志清理任务
// 每天凌晨清掉超过保留期的变更日志，本地库不无限增长
type AuditCleanupTask struct {
	LogRepo   repository.MutationLogRepository
	Cron      *cron.Cron
	retention time.Duration
}

func NewAuditCleanupTask(logRepo repository.MutationLogRepository, retention time.Duration) *AuditCleanupTask {
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	return &AuditCleanupTask{
		LogRepo:   logRepo,
		Cron:      cron.New(cron.WithSeconds()),
		retention: retention,
	}
}

// Start 启动定时任务
func (t *AuditCleanupTask) Start() {
	_, err := t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.cleanupJob(ctx)
	})
	if err != nil {
		log.Fatalf("无法启动审计清理任务: %v", err)
	}

	t.Cron.Start()
	log.Println("审计日志清理任务已启动 (每天凌晨3点)")
}

// Stop 停止定时任务
func (t *AuditCleanupTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
}

func (t *AuditCleanupTask) cleanupJob(ctx context.Context) {
	before := time.Now().Add(-t.retention)
	deleted, err := t.LogRepo.DeleteBefore(ctx, before)
	if err != nil {
		log.Printf("[Cron] 审计日志清理失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[Cron] 已清理 %d 条过期审计日志", deleted)
	}
}
