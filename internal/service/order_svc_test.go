package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
)

// mountOrder 挂单个订单的读写接口
// 读返回给定订单快照，写按请求里的目标状态回显
func mountOrder(env *testEnv, order model.Order) (gets, puts *int32) {
	var g, p int32
	env.mux.HandleFunc("/orders/"+order.ID, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&g, 1)
		writeJSON(w, http.StatusOK, order)
	})
	env.mux.HandleFunc("/orders/"+order.ID+"/status", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&p, 1)
		var req dto.UpdateOrderStatusRequest
		json.NewDecoder(r.Body).Decode(&req)
		updated := order
		updated.Status = req.Status
		updated.Carrier = req.Carrier
		updated.TrackingNumber = req.TrackingNumber
		writeJSON(w, http.StatusOK, dto.OrderUpdateResponse{Message: "ok", Order: updated})
	})
	return &g, &p
}

// ==================== 查询 ====================

func TestOrderService_ListOrders_Cached(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	var calls int32
	env.mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, dto.OrdersResponse{Orders: []model.Order{{ID: "o1"}, {ID: "o2"}}})
	})

	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		orders, err := svc.ListOrders(ctx)
		if err != nil {
			t.Fatalf("ListOrders 失败: %v", err)
		}
		if len(orders) != 2 {
			t.Fatalf("orders = %d, want 2", len(orders))
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("上游调用 %d 次, want 1", calls)
	}
}

func TestOrderService_ListOrders_LogoutClearDuringFetch(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	entered := make(chan struct{}, 4)
	release := make(chan struct{})
	env.mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		entered <- struct{}{}
		<-release
		writeJSON(w, http.StatusOK, dto.OrdersResponse{Orders: []model.Order{{ID: "o1"}}})
	})

	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	ctx := context.Background()

	// 两个读者撞上同一个慢请求，拉取途中缓存被整体清掉
	var wg sync.WaitGroup
	results := make([][]model.Order, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ListOrders(ctx)
		}(i)
	}
	<-entered
	time.Sleep(50 * time.Millisecond)
	env.cache.Clear()
	close(release)
	wg.Wait()

	for i := 0; i < 2; i++ {
		if errs[i] != nil {
			t.Fatalf("reader %d 失败: %v", i, errs[i])
		}
		if len(results[i]) != 1 || results[i][0].ID != "o1" {
			t.Errorf("reader %d 结果 = %+v", i, results[i])
		}
	}
}

func TestOrderService_GetOrder_ForbiddenForOtherBuyer(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	mountOrder(env, model.Order{ID: "o1", BuyerID: "someone-else", SellerID: "s9", Status: model.OrderStatusPending})

	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	if _, err := svc.GetOrder(context.Background(), "o1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("别人的订单应拒看, got %v", err)
	}
}

func TestOrderService_GetOrder_OwnOrder(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	mountOrder(env, model.Order{ID: "o1", BuyerID: "u-buyer", SellerID: "s1", Status: model.OrderStatusPending})

	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	order, err := svc.GetOrder(context.Background(), "o1")
	if err != nil {
		t.Fatalf("GetOrder 失败: %v", err)
	}
	if order.ID != "o1" {
		t.Errorf("order.ID = %s", order.ID)
	}
}

// ==================== 状态推进 ====================

func TestOrderService_UpdateStatus_Advance(t *testing.T) {
	env := newTestEnv(t, testSeller(model.SellerStatusApproved))
	_, puts := mountOrder(env, model.Order{ID: "o1", BuyerID: "b1", SellerID: "s1", Status: model.OrderStatusPending})

	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	order, err := svc.UpdateStatus(context.Background(), "o1", &dto.UpdateOrderStatusRequest{Status: model.OrderStatusProcessing})
	if err != nil {
		t.Fatalf("UpdateStatus 失败: %v", err)
	}
	if order.Status != model.OrderStatusProcessing {
		t.Errorf("status = %s, want processing", order.Status)
	}
	if atomic.LoadInt32(puts) != 1 {
		t.Errorf("状态接口调用 %d 次, want 1", *puts)
	}
}

func TestOrderService_UpdateStatus_ShipmentFieldsAtomic(t *testing.T) {
	env := newTestEnv(t, testSeller(model.SellerStatusApproved))
	_, puts := mountOrder(env, model.Order{ID: "o1", BuyerID: "b1", SellerID: "s1", Status: model.OrderStatusProcessing})
	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, "o1", &dto.UpdateOrderStatusRequest{Status: model.OrderStatusShipped, Carrier: "顺丰"})
	if !errors.Is(err, model.ErrShipmentIncomplete) {
		t.Errorf("缺运单号应拒发, got %v", err)
	}
	if atomic.LoadInt32(puts) != 0 {
		t.Error("本地校验失败时不应打上游")
	}

	order, err := svc.UpdateStatus(ctx, "o1", &dto.UpdateOrderStatusRequest{
		Status: model.OrderStatusShipped, Carrier: "顺丰", TrackingNumber: "SF123456",
	})
	if err != nil {
		t.Fatalf("完整发货信息应放行: %v", err)
	}
	if order.Carrier != "顺丰" || order.TrackingNumber != "SF123456" {
		t.Errorf("发货字段未回显: %+v", order)
	}
}

func TestOrderService_UpdateStatus_InvalidFlow(t *testing.T) {
	env := newTestEnv(t, testSeller(model.SellerStatusApproved))
	mountOrder(env, model.Order{ID: "o1", BuyerID: "b1", SellerID: "s1", Status: model.OrderStatusPending})
	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)

	// 跳级 pending → shipped
	_, err := svc.UpdateStatus(context.Background(), "o1", &dto.UpdateOrderStatusRequest{
		Status: model.OrderStatusShipped, Carrier: "顺丰", TrackingNumber: "SF1",
	})
	if !errors.Is(err, model.ErrInvalidTransition) {
		t.Errorf("跳级流转应拒绝, got %v", err)
	}
}

func TestOrderService_UpdateStatus_BuyerForbidden(t *testing.T) {
	env := newTestEnv(t, testBuyer())
	mountOrder(env, model.Order{ID: "o1", BuyerID: "u-buyer", SellerID: "s1", Status: model.OrderStatusPending})
	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)

	_, err := svc.UpdateStatus(context.Background(), "o1", &dto.UpdateOrderStatusRequest{Status: model.OrderStatusProcessing})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("买家推进订单应拒绝, got %v", err)
	}
}

func TestOrderService_UpdateStatus_OtherSellersOrder(t *testing.T) {
	env := newTestEnv(t, testSeller(model.SellerStatusApproved))
	mountOrder(env, model.Order{ID: "o1", BuyerID: "b1", SellerID: "s-other", Status: model.OrderStatusPending})
	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)

	_, err := svc.UpdateStatus(context.Background(), "o1", &dto.UpdateOrderStatusRequest{Status: model.OrderStatusProcessing})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("别家订单应拒绝, got %v", err)
	}
}

func TestOrderService_UpdateStatus_DeliveredAuthority(t *testing.T) {
	order := model.Order{ID: "o1", BuyerID: "b1", SellerID: "s1", Status: model.OrderStatusInTransit}

	// 默认策略：签收只有管理员能确认
	env := newTestEnv(t, testSeller(model.SellerStatusApproved))
	mountOrder(env, order)
	svc := NewOrderService(env.api, env.cache, env.sess, env.pol)
	_, err := svc.UpdateStatus(context.Background(), "o1", &dto.UpdateOrderStatusRequest{Status: model.OrderStatusDelivered})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("默认策略下卖家确认签收应拒绝, got %v", err)
	}

	// 配置成卖家确认后放行
	env2 := newTestEnv(t, testSeller(model.SellerStatusApproved))
	mountOrder(env2, order)
	svc2 := NewOrderService(env2.api, env2.cache, env2.sess, policy.New(policy.DeliveredBySeller))
	updated, err := svc2.UpdateStatus(context.Background(), "o1", &dto.UpdateOrderStatusRequest{Status: model.OrderStatusDelivered})
	if err != nil {
		t.Fatalf("卖家策略下应放行: %v", err)
	}
	if updated.Status != model.OrderStatusDelivered {
		t.Errorf("status = %s, want delivered", updated.Status)
	}
}
