package task

import (
	"context"
	"log"
	"time"

	"marketfront_v1/internal/session"

	"github.com/robfig/cron/v3"
)

// SessionTask 会话保活任务
// 周期性检查 token 剩余有效期并向上游核对会话，
// 上游拒绝时会话层自己会打回未登录态，这里只负责触发
type SessionTask struct {
	Session *session.Session
	Cron    *cron.Cron

	// token 剩余有效期低于该值时提前告警
	expiryWarning time.Duration
}

func NewSessionTask(sess *session.Session) *SessionTask {
	return &SessionTask{
		Session:       sess,
		Cron:          cron.New(cron.WithSeconds()), // 支持秒级控制
		expiryWarning: 10 * time.Minute,
	}
}

// Start 启动定时任务
func (t *SessionTask) Start() {
	// 首次执行
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		log.Println("[Task] 服务启动，正在执行首次会话检查...")
		t.checkJob(ctx)
	}()

	// 定时策略
	_, err := t.Cron.AddFunc("0 0/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		t.checkJob(ctx)
	})

	if err != nil {
		log.Fatalf("无法启动会话检查任务: %v", err)
	}

	t.Cron.Start()
	log.Println("会话保活任务已启动 (每5分钟检查一次)")
}

// Stop 停止定时任务
func (t *SessionTask) Stop() {
	ctx := t.Cron.Stop()
	<-ctx.Done()
}

// checkJob 会话检查逻辑
func (t *SessionTask) checkJob(ctx context.Context) {
	if t.Session.State() != session.StateAuthenticated {
		return
	}

	if expires := t.Session.TokenExpiresAt(); !expires.IsZero() {
		remaining := time.Until(expires)
		if remaining <= 0 {
			log.Println("[Cron] Token 已过期，登出本地会话")
			t.Session.Logout(ctx)
			return
		}
		if remaining < t.expiryWarning {
			log.Printf("[Cron] Token 剩余有效期不足 %v (还剩 %v)", t.expiryWarning, remaining.Round(time.Second))
		}
	}

	// 向上游核对一次，401 会触发会话层的登出回调
	if err := t.Session.RefreshProfile(ctx); err != nil {
		log.Printf("[Cron] 会话核对失败: %v", err)
	}
}
