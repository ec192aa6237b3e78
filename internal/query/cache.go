package query

import (
	"context"
	"sync"
	"time"

	"marketfront_v1/pkg/rest"
)

// ==================== 带标签失效的查询缓存 ====================
// 资源键 → {data, error, 拉取时间}。每个读操作声明自己归属的标签，
// 每个写操作按标签使条目失效，不做字符串前缀匹配。
// 同一个键的并发读合并为一次上游请求（single-flight）。
// 没有后台刷新，没有自动重试：拉取失败时错误原样返回给这一轮
// 合并的所有读者，条目随即标记 stale，下一次读重新拉取——
// 错误不长期驻留，合并只对同一轮在途请求生效。

// FetchFunc 上游拉取函数
type FetchFunc func(ctx context.Context) (interface{}, error)

// Options 单次读取的选项
type Options struct {
	// Tags 该条目归属的失效标签
	Tags []string

	// NilOn401 后台读遇到 401 时按"无数据"处理而不是报错，
	// 避免未登录状态下的读操作把页面打进重定向循环；
	// 用户主动发起的变更永远不走这个选项
	NilOn401 bool
}

// entry 缓存条目
type entry struct {
	data      interface{}
	err       error
	fetchedAt time.Time
	tags      []string
	stale     bool

	// 拉取中的等待句柄
	pending chan struct{}
}

// Cache 查询缓存
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewCache 创建缓存
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// ==================== 读取 ====================

// Get 读取一个资源键
// 命中且未失效：直接返回缓存值
// 未命中或已失效：发起一次拉取，其他并发读阻塞等这次结果
// 不变式：返回 (nil, nil) 仅当拉取方自己产出了 (nil, nil)，
// 等待途中条目被 Clear 丢弃时回头重新走一遍查找/拉取
func (c *Cache) Get(ctx context.Context, key string, opts Options, fetch FetchFunc) (interface{}, error) {
	for {
		c.mu.Lock()
		e, ok := c.entries[key]

		// 命中有效条目
		if ok && !e.stale && e.pending == nil {
			c.mu.Unlock()
			return e.data, e.err
		}

		// 有人正在拉取，等它
		if ok && e.pending != nil {
			pending := e.pending
			c.mu.Unlock()
			select {
			case <-pending:
			case <-ctx.Done():
				return nil, ctx.Err()
			}

			c.mu.Lock()
			// 等到的还是同一个条目才能用它的结果；
			// 被 Clear 换掉或丢弃时回到循环重新判定
			if cur := c.entries[key]; cur == e && cur.pending == nil {
				c.mu.Unlock()
				return cur.data, cur.err
			}
			c.mu.Unlock()
			continue
		}

		// 本协程负责拉取
		e = &entry{tags: opts.Tags, pending: make(chan struct{})}
		c.entries[key] = e
		c.mu.Unlock()

		data, err := fetch(ctx)

		// 401 按配置降级为无数据
		if err != nil && opts.NilOn401 {
			if apiErr, isAPI := rest.AsAPIError(err); isAPI && apiErr.IsUnauthorized() {
				data, err = nil, nil
			}
		}

		c.mu.Lock()
		e.data = data
		e.err = err
		e.fetchedAt = time.Now()
		// 失败结果只发给这一轮等待者，不驻留；拉取期间收到的失效也保留
		e.stale = e.stale || err != nil
		close(e.pending)
		e.pending = nil
		c.mu.Unlock()

		return data, err
	}
}

// Peek 只查不拉，供测试与视图判断用
func (c *Cache) Peek(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.stale || e.pending != nil {
		return nil, false
	}
	return e.data, true
}

// ==================== 失效 ====================

// Invalidate 按键失效
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			e.stale = true
		}
	}
}

// InvalidateTags 按标签失效：命中任一标签的条目标记为 stale，
// 下一次读会重新拉取。这是唯一的一致性原语，跨键一致性尽力而为
func (c *Cache) InvalidateTags(tags ...string) {
	if len(tags) == 0 {
		return
	}
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		for _, t := range e.tags {
			if want[t] {
				e.stale = true
				break
			}
		}
	}
}

// Clear 清空全部条目（登出时用）
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
}
