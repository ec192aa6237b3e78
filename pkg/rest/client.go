package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 错误类型 ====================

// APIError 上游 API 的非 2xx 响应
// Message 取服务端返回的 message 字段，没有则给通用兜底文案
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API %d: %s", e.Status, e.Message)
}

// IsUnauthorized 是否 401
func (e *APIError) IsUnauthorized() bool { return e.Status == http.StatusUnauthorized }

// AsAPIError 从 error 中取出 *APIError
func AsAPIError(err error) (*APIError, bool) {
	apiErr, ok := err.(*APIError)
	return apiErr, ok
}

// errorBody 服务端错误响应体
type errorBody struct {
	Message string `json:"message"`
}

// ==================== TokenSource ====================

// TokenSource 提供当前会话的 Bearer Token
// 会话层实现它；拿不到 token 时返回空串，请求就不带认证头
type TokenSource interface {
	Token() string
}

// TokenFunc 函数适配器
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// ==================== Client 上游 API 客户端 ====================

// Client 无状态的 JSON-over-HTTP 封装
// 不自动重试（重试次数 0），不配置显式超时之外的任何恢复策略，
// 失败原样抛给调用方处理
type Client struct {
	http           *resty.Client
	tokens         TokenSource
	onUnauthorized func()
}

// Config 客户端配置
type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// NewClient 创建客户端
// 统一的网络出口：认证头、UA、超时都在这里配置
func NewClient(cfg *Config, tokens TokenSource) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetDebug(cfg.Debug).
		SetRetryCount(0).
		SetHeader("User-Agent", "Marketfront-Go-App/1.0").
		SetHeader("Content-Type", "application/json")

	return &Client{http: hc, tokens: tokens}
}

// SetOnUnauthorized 注册 401 回调（会话层用它把状态打回未登录）
func (c *Client) SetOnUnauthorized(fn func()) { c.onUnauthorized = fn }

// ==================== 请求方法 ====================

// Get 发 GET 请求，out 为响应解码目标（可为 nil）
func (c *Client) Get(ctx context.Context, path string, query map[string]string, out interface{}) error {
	req := c.newRequest(ctx)
	if query != nil {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	return c.finish(resp, err, out)
}

// Post 发 POST 请求
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	return c.finish(resp, err, out)
}

// Put 发 PUT 请求
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	req := c.newRequest(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Put(path)
	return c.finish(resp, err, out)
}

// Delete 发 DELETE 请求
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	resp, err := c.newRequest(ctx).Delete(path)
	return c.finish(resp, err, out)
}

// ==================== 内部 ====================

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := c.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

// finish 统一收口：网络错误原样抛，非 2xx 解析服务端 message
func (c *Client) finish(resp *resty.Response, err error, out interface{}) error {
	if err != nil {
		return fmt.Errorf("请求失败: %w", err)
	}

	if resp.IsError() {
		apiErr := &APIError{Status: resp.StatusCode()}
		var body errorBody
		if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil && body.Message != "" {
			apiErr.Message = body.Message
		} else {
			apiErr.Message = fmt.Sprintf("请求失败 (状态码 %d)", resp.StatusCode())
		}

		if apiErr.IsUnauthorized() && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("响应解析失败: %w", err)
		}
	}
	return nil
}
