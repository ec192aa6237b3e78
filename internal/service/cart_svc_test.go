package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/pkg/rest"
)

// ==================== 夹具 ====================

// twoSellerCart 两个卖家共三行：s1 两行 (10.50×2 + 4.00×1)，s2 一行 (25.00×1)
func twoSellerCart() []model.CartItem {
	return []model.CartItem{
		{ID: "i1", ProductID: "p1", Quantity: 2, Product: &model.Product{ID: "p1", SellerID: "s1", Name: "陶瓷杯", Price: 10.50, Stock: 10}},
		{ID: "i2", ProductID: "p2", Quantity: 1, Product: &model.Product{ID: "p2", SellerID: "s1", Name: "帆布包", Price: 4.00, Stock: 3}},
		{ID: "i3", ProductID: "p3", Quantity: 1, Product: &model.Product{ID: "p3", SellerID: "s2", Name: "木质书签", Price: 25.00, Stock: 5}},
	}
}

// mountCart 挂购物车读接口，返回上游调用计数
func mountCart(env *testEnv, items []model.CartItem) *int32 {
	var calls int32
	env.mux.HandleFunc("/orders/cart", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			atomic.AddInt32(&calls, 1)
			writeJSON(w, http.StatusOK, dto.CartResponse{Items: items})
			return
		}
		writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "ok"})
	})
	return &calls
}

// ==================== 购物车 CRUD ====================

func TestCartService_GetCart_Cached(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	calls := mountCart(env, twoSellerCart())
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := svc.GetCart(ctx)
		if err != nil {
			t.Fatalf("GetCart 失败: %v", err)
		}
		if len(items) != 3 {
			t.Fatalf("items = %d, want 3", len(items))
		}
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Errorf("上游调用 %d 次, want 1（应命中缓存）", n)
	}
}

func TestCartService_AddItem_InvalidatesCart(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	calls := mountCart(env, twoSellerCart())
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)
	ctx := context.Background()

	svc.GetCart(ctx)
	if err := svc.AddItem(ctx, "p1", 1); err != nil {
		t.Fatalf("AddItem 失败: %v", err)
	}
	svc.GetCart(ctx)

	if n := atomic.LoadInt32(calls); n != 2 {
		t.Errorf("加购后应重取购物车，上游调用 %d 次, want 2", n)
	}
}

func TestCartService_AddItem_Validation(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)

	if err := svc.AddItem(context.Background(), "p1", 0); !errors.Is(err, model.ErrInvalidQuantity) {
		t.Errorf("数量 0 应拒绝, got %v", err)
	}
}

func TestCartService_AddItem_SellerForbidden(t *testing.T) {
	env := newTestEnv(t, testSeller(model.SellerStatusApproved))
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)

	if err := svc.AddItem(context.Background(), "p1", 1); !errors.Is(err, ErrForbidden) {
		t.Errorf("卖家加购应拒绝, got %v", err)
	}
}

// ==================== 结账预览 ====================

func TestCartService_Preview_PartitionsBySeller(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	mountCart(env, twoSellerCart())
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)

	preview, err := svc.Preview(context.Background())
	if err != nil {
		t.Fatalf("Preview 失败: %v", err)
	}

	if len(preview.Partitions) != 2 {
		t.Fatalf("分组数 = %d, want 2", len(preview.Partitions))
	}
	// 分组顺序按卖家首次出现的顺序稳定
	if preview.Partitions[0].SellerID != "s1" || preview.Partitions[1].SellerID != "s2" {
		t.Errorf("分组顺序错误: %s, %s", preview.Partitions[0].SellerID, preview.Partitions[1].SellerID)
	}
	if preview.Partitions[0].Total != 25.00 {
		t.Errorf("s1 小计 = %.2f, want 25.00", preview.Partitions[0].Total)
	}
	if preview.GrandTotal != 50.00 {
		t.Errorf("总计 = %.2f, want 50.00", preview.GrandTotal)
	}
	if preview.ItemCount != 4 {
		t.Errorf("件数 = %d, want 4", preview.ItemCount)
	}
}

// ==================== 结账 ====================

func TestCartService_Checkout_Success(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	mountCart(env, twoSellerCart())

	var checkouts int32
	env.mux.HandleFunc("/orders/checkout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&checkouts, 1)
		writeJSON(w, http.StatusCreated, dto.CheckoutResponse{
			Message: "Orders created",
			Orders: []model.Order{
				{ID: "o1", SellerID: "s1", Status: model.OrderStatusPending},
				{ID: "o2", SellerID: "s2", Status: model.OrderStatusPending},
			},
		})
	})

	svc := NewCartService(env.api, env.cache, env.sess, env.pol)
	orders, err := svc.Checkout(context.Background(), &dto.CheckoutRequest{
		ShippingAddress: "798 艺术区 2 号院",
		Method:          "standard",
	})
	if err != nil {
		t.Fatalf("Checkout 失败: %v", err)
	}
	if len(orders) != 2 {
		t.Errorf("跨卖家购物车应拆成 2 张订单, got %d", len(orders))
	}
	if atomic.LoadInt32(&checkouts) != 1 {
		t.Errorf("checkout 上游调用 %d 次, want 1", checkouts)
	}
}

func TestCartService_Checkout_MissingShippingInfo(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)

	_, err := svc.Checkout(context.Background(), &dto.CheckoutRequest{ShippingAddress: "", Method: "standard"})
	if !errors.Is(err, ErrMissingShippingInfo) {
		t.Errorf("缺收货地址应拒绝, got %v", err)
	}
}

func TestCartService_Checkout_EmptyCart(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	mountCart(env, nil)
	svc := NewCartService(env.api, env.cache, env.sess, env.pol)

	_, err := svc.Checkout(context.Background(), &dto.CheckoutRequest{
		ShippingAddress: "某地", Method: "standard",
	})
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("空车结账应拒绝, got %v", err)
	}
}

func TestCartService_Checkout_StaleTokenSurfacesAuthError(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	// token 已被服务端作废：读购物车撞 401
	env.mux.HandleFunc("/orders/cart", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, dto.MessageResponse{Message: "token 已失效"})
	})

	svc := NewCartService(env.api, env.cache, env.sess, env.pol)
	_, err := svc.Checkout(context.Background(), &dto.CheckoutRequest{
		ShippingAddress: "某地", Method: "standard",
	})
	if errors.Is(err, ErrEmptyCart) {
		t.Fatal("结账撞 401 不能伪装成空车")
	}
	apiErr, ok := rest.AsAPIError(err)
	if !ok || !apiErr.IsUnauthorized() {
		t.Errorf("应上抛认证错误, got %v", err)
	}
}

func TestCartService_Checkout_StockPrecheck(t *testing.T) {
	items := twoSellerCart()
	items[1].Quantity = 4 // 帆布包库存只有 3

	env := newTestEnv(t, testBuyer())
	mountCart(env, items)
	var checkouts int32
	env.mux.HandleFunc("/orders/checkout", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&checkouts, 1)
	})

	svc := NewCartService(env.api, env.cache, env.sess, env.pol)
	_, err := svc.Checkout(context.Background(), &dto.CheckoutRequest{
		ShippingAddress: "某地", Method: "standard",
	})
	if !errors.Is(err, ErrInsufficientStock) || !strings.Contains(err.Error(), "帆布包") {
		t.Errorf("超卖应带商品名失败, got %v", err)
	}
	if atomic.LoadInt32(&checkouts) != 0 {
		t.Error("本地预检失败时不应打上游 checkout")
	}
}

func TestCartService_Checkout_InvalidatesOrdersAndCart(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	cartCalls := mountCart(env, twoSellerCart())
	var orderCalls int32
	env.mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&orderCalls, 1)
		writeJSON(w, http.StatusOK, dto.OrdersResponse{})
	})
	env.mux.HandleFunc("/orders/checkout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, dto.CheckoutResponse{Orders: []model.Order{{ID: "o1"}}})
	})

	cartSvc := NewCartService(env.api, env.cache, env.sess, env.pol)
	orderSvc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	ctx := context.Background()

	cartSvc.GetCart(ctx)
	orderSvc.ListOrders(ctx)

	if _, err := cartSvc.Checkout(ctx, &dto.CheckoutRequest{ShippingAddress: "某地", Method: "standard"}); err != nil {
		t.Fatalf("Checkout 失败: %v", err)
	}

	cartSvc.GetCart(ctx)
	orderSvc.ListOrders(ctx)

	// 结账前后各取一次：缓存被打掉才会出现第二次上游调用
	// （结账内部的预检读命中的是同一份缓存，不产生新请求）
	if n := atomic.LoadInt32(cartCalls); n != 2 {
		t.Errorf("购物车上游调用 %d 次, want 2", n)
	}
	if n := atomic.LoadInt32(&orderCalls); n != 2 {
		t.Errorf("订单列表上游调用 %d 次, want 2", n)
	}
}
