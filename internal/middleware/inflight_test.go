package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestInflightGuard_AcquireRelease(t *testing.T) {
	g := NewInflightGuard()

	if !g.TryAcquire("u1:checkout:") {
		t.Fatal("空闲 key 应能占用")
	}
	if g.TryAcquire("u1:checkout:") {
		t.Error("占用中的 key 不应重复占用")
	}
	if !g.TryAcquire("u2:checkout:") {
		t.Error("不同用户互不影响")
	}

	g.Release("u1:checkout:")
	if !g.TryAcquire("u1:checkout:") {
		t.Error("释放后应能再次占用")
	}
}

func TestSingleShot_ConcurrentDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// 第一个请求在 handler 里挂起，保证第二个请求撞上占用中的 key
	entered := make(chan struct{})
	release := make(chan struct{})
	var handled int32

	r := gin.New()
	r.POST("/checkout", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "u1")
	}, SingleShot("checkout"), func(c *gin.Context) {
		atomic.AddInt32(&handled, 1)
		close(entered)
		<-release
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})

	var wg sync.WaitGroup
	wg.Add(1)
	first := httptest.NewRecorder()
	go func() {
		defer wg.Done()
		r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	}()

	<-entered
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	close(release)
	wg.Wait()

	if first.Code != http.StatusOK {
		t.Errorf("第一次请求 = %d, want 200", first.Code)
	}
	if second.Code != http.StatusConflict {
		t.Errorf("重复提交 = %d, want 409", second.Code)
	}
	if atomic.LoadInt32(&handled) != 1 {
		t.Errorf("业务 handler 执行 %d 次, want 1", handled)
	}
}

func TestSingleShot_ReleasedAfterCompletion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.PUT("/orders/:id/status", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "u1")
	}, SingleShot("order_status"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})

	// 前一次落定后同一动作可以再次发起
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/orders/o1/status", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("第 %d 次请求 = %d, want 200", i+1, w.Code)
		}
	}
}

func TestSingleShot_DifferentTargetsIndependent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	entered := make(chan struct{})
	release := make(chan struct{})

	r := gin.New()
	r.PUT("/orders/:id/status", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "u1")
	}, SingleShot("order_status"), func(c *gin.Context) {
		if c.Param("id") == "o1" {
			close(entered)
			<-release
		}
		c.JSON(http.StatusOK, gin.H{"code": 0})
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/orders/o1/status", nil))
	}()

	<-entered
	// o1 占用中不影响 o2
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/orders/o2/status", nil))
	if w.Code != http.StatusOK {
		t.Errorf("不同订单的同名动作应互不影响, got %d", w.Code)
	}
	close(release)
	wg.Wait()
}
