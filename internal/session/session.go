package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/repository"
	"marketfront_v1/pkg/rest"

	"github.com/golang-jwt/jwt/v5"
)

// ==================== 会话状态 ====================

// 会话状态机：unauthenticated → loading → authenticated
// 进程内只有一个逻辑会话；并发登录不做协调，后写覆盖先写
const (
	StateUnauthenticated = "unauthenticated"
	StateLoading         = "loading"
	StateAuthenticated   = "authenticated"
)

var (
	ErrNotAuthenticated = errors.New("当前未登录")
)

// ==================== Session ====================

// Session 进程级会话，显式注入到所有需要调 API 的组件，
// 不走全局变量。它同时实现 rest.TokenSource。
type Session struct {
	mu    sync.RWMutex
	state string
	user  *model.User
	token string

	creds repository.CredentialRepository
	api   *rest.Client

	// 登出时顺带清掉的缓存
	onLogout []func()
}

// New 创建会话，初始为未登录
func New(creds repository.CredentialRepository) *Session {
	return &Session{
		state: StateUnauthenticated,
		creds: creds,
	}
}

// BindClient 两段式装配：客户端以会话为 TokenSource，
// 会话再拿客户端去调认证接口
func (s *Session) BindClient(api *rest.Client) {
	s.api = api
	api.SetOnUnauthorized(s.handleUnauthorized)
}

// OnLogout 注册登出钩子（查询缓存清理等）
func (s *Session) OnLogout(fn func()) {
	s.onLogout = append(s.onLogout, fn)
}

// ==================== 读取 ====================

// Token 实现 rest.TokenSource
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State 当前状态
func (s *Session) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// CurrentUser 当前用户快照，未登录时返回 nil
func (s *Session) CurrentUser() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return nil
	}
	snapshot := *s.user
	return &snapshot
}

// TokenExpiresAt 解析 token 的过期时间（不验签，只读声明）
// 解析不了返回零值，调用方按"未知"处理
func (s *Session) TokenExpiresAt() time.Time {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return time.Time{}
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}

// ==================== 状态流转 ====================

// Restore 进程启动恢复：有持久化凭证就进 loading 并拉取资料，
// 拉取失败清凭证回到未登录
func (s *Session) Restore(ctx context.Context) error {
	cred, err := s.creds.Load(ctx)
	if err != nil {
		return err
	}
	if cred == nil || cred.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.state = StateLoading
	s.token = cred.Token
	s.mu.Unlock()

	var user model.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		log.Printf("[Session] 凭证恢复失败，清除本地 token: %v", err)
		s.reset(ctx)
		return nil
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &user
	s.mu.Unlock()
	log.Printf("[Session] 会话已恢复: %s (%s)", user.Username, user.Role)
	return nil
}

// Login 登录：成功进入 authenticated 并持久化新 token，
// 失败回到未登录且不落任何凭证，错误上抛给调用方
func (s *Session) Login(ctx context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	var resp dto.LoginResponse
	err := s.api.Post(ctx, "/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		s.mu.Lock()
		s.state = StateUnauthenticated
		s.user = nil
		s.token = ""
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = &resp.User
	s.token = resp.AccessToken
	s.mu.Unlock()

	if err := s.creds.Save(ctx, resp.AccessToken, username); err != nil {
		log.Printf("[Session] 凭证持久化失败: %v", err)
	}
	return s.CurrentUser(), nil
}

// Register 注册：先建账号，再用同一组凭据内部登录
// 任一步失败都以注册失败的形式上抛
func (s *Session) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	if err := model.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := model.ValidateRegisterRole(req.Role); err != nil {
		return nil, err
	}

	var resp dto.RegisterResponse
	if err := s.api.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return s.Login(ctx, req.Username, req.Password)
}

// Logout 登出：清凭证、清状态、触发登出钩子，直到下次登录为止是终态
// 在途请求可能带着已失效 token 完成，服务端会拒绝，客户端按认证错误呈现
func (s *Session) Logout(ctx context.Context) {
	s.reset(ctx)
	for _, fn := range s.onLogout {
		fn()
	}
	log.Println("[Session] 已登出")
}

// UpdateUser 资料更新：先乐观打本地补丁，再以服务端响应对账，
// 失败回滚到修改前的快照
func (s *Session) UpdateUser(ctx context.Context, req *dto.UpdateProfileRequest) (*model.User, error) {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	before := *s.user
	patched := before
	if req.Email != nil {
		patched.Email = *req.Email
	}
	if req.Phone != nil {
		patched.Phone = *req.Phone
	}
	if req.Address != nil {
		patched.Address = *req.Address
	}
	s.user = &patched
	s.mu.Unlock()

	var resp dto.UpdateProfileResponse
	if err := s.api.Put(ctx, "/auth/profile", req, &resp); err != nil {
		// 回滚乐观补丁
		s.mu.Lock()
		if s.state == StateAuthenticated {
			s.user = &before
		}
		s.mu.Unlock()
		return nil, err
	}

	// 以服务端返回为准对账
	s.mu.Lock()
	if s.state == StateAuthenticated {
		// /auth/profile 不回传卖家档案，保留本地已有的
		if resp.User.SellerProfile == nil {
			resp.User.SellerProfile = before.SellerProfile
		}
		s.user = &resp.User
	}
	s.mu.Unlock()
	return s.CurrentUser(), nil
}

// RefreshProfile 重新拉取 /auth/me（卖家档案状态变化后刷新用）
func (s *Session) RefreshProfile(ctx context.Context) error {
	if s.State() != StateAuthenticated {
		return ErrNotAuthenticated
	}
	var user model.User
	if err := s.api.Get(ctx, "/auth/me", nil, &user); err != nil {
		return err
	}
	s.mu.Lock()
	if s.state == StateAuthenticated {
		s.user = &user
	}
	s.mu.Unlock()
	return nil
}

// ==================== 内部 ====================

// handleUnauthorized 任何请求撞上 401 时，把会话打回未登录
func (s *Session) handleUnauthorized() {
	s.mu.Lock()
	wasAuthenticated := s.state == StateAuthenticated
	s.mu.Unlock()
	if wasAuthenticated {
		log.Println("[Session] 服务端返回 401，会话失效")
		s.reset(context.Background())
	}
}

func (s *Session) reset(ctx context.Context) {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	if err := s.creds.Clear(ctx); err != nil {
		log.Printf("[Session] 凭证清除失败: %v", err)
	}
}
