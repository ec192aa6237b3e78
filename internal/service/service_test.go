package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/session"
	"marketfront_v1/pkg/rest"
)

// ==================== 测试公共设施 ====================

// memCreds 内存版凭证仓库，测试不落库
type memCreds struct {
	token    string
	username string
}

func (m *memCreds) Load(ctx context.Context) (*model.Credential, error) {
	if m.token == "" {
		return nil, nil
	}
	return &model.Credential{Token: m.token, Username: m.username}, nil
}

func (m *memCreds) Save(ctx context.Context, token, username string) error {
	m.token, m.username = token, username
	return nil
}

func (m *memCreds) Clear(ctx context.Context) error {
	m.token, m.username = "", ""
	return nil
}

// testEnv 指向假上游的一整套依赖，按给定用户登录完成
type testEnv struct {
	mux   *http.ServeMux
	api   *rest.Client
	cache *query.Cache
	sess  *session.Session
	pol   *policy.Policy
}

// newTestEnv 起假上游、装配会话与缓存、登录
// 各用例往 env.mux 上挂自己的业务路由
func newTestEnv(t *testing.T, user model.User) *testEnv {
	t.Helper()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dto.LoginResponse{AccessToken: "test-token", User: user})
	})

	sess := session.New(&memCreds{})
	api := rest.NewClient(&rest.Config{BaseURL: srv.URL}, sess)
	sess.BindClient(api)
	cache := query.NewCache()
	sess.OnLogout(cache.Clear)

	env := &testEnv{mux: mux, api: api, cache: cache, sess: sess, pol: policy.New("")}
	if _, err := sess.Login(context.Background(), user.Username, "secret"); err != nil {
		t.Fatalf("测试登录失败: %v", err)
	}
	return env
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ==================== 用户夹具 ====================

func testBuyer() model.User {
	return model.User{ID: "u-buyer", Username: "alice", Email: "alice@shop.io", Role: model.RoleBuyer}
}

func testSeller(status string) model.User {
	return model.User{
		ID: "u-seller", Username: "bob", Email: "bob@shop.io", Role: model.RoleSeller,
		SellerProfile: &model.Seller{ID: "s1", UserID: "u-seller", BusinessName: "Bob 手作", Status: status},
	}
}

func testAdmin() model.User {
	return model.User{ID: "u-admin", Username: "root", Email: "root@shop.io", Role: model.RoleAdmin}
}
