package controller

import (
	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// ==================== 订单接口 ====================

// GetOrders 获取订单列表
// @Summary 当前用户可见的订单（买家看自己的，卖家看自己店的，管理员看全部）
// @Tags Order
// @Success 200 {object} dto.OrdersResponse
// @Router /api/orders [get]
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := ctrl.orderService.ListOrders(ctx)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"orders": orders},
	})
}

// GetOrder 获取订单详情
// @Summary 单订单详情，仅买家本人/卖家本人/管理员可见
// @Tags Order
// @Param id path string true "订单ID"
// @Success 200 {object} model.Order
// @Router /api/orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的订单ID"})
		return
	}

	ctx := c.Request.Context()
	order, err := ctrl.orderService.GetOrder(ctx, id)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    order,
	})
}

// UpdateStatus 推进订单状态
// @Summary 沿状态链推进订单，shipped 需同时带 carrier 与 trackingNumber
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "订单ID"
// @Param body body dto.UpdateOrderStatusRequest true "目标状态"
// @Success 200 {object} dto.OrderUpdateResponse
// @Router /api/orders/{id}/status [put]
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的订单ID"})
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	order, err := ctrl.orderService.UpdateStatus(ctx, id, &req)
	if err != nil {
		respondError(c, err, "状态变更失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    order,
	})
}
