package controller

import (
	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/service"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *service.CartService
}

func NewCartController(cartService *service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// ==================== 购物车接口 ====================

// GetCart 获取购物车
// @Summary 当前买家的购物车内容
// @Tags Cart
// @Success 200 {object} dto.CartResponse
// @Router /api/cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := ctrl.cartService.GetCart(ctx)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}
	if items == nil {
		items = []model.CartItem{}
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"items": items},
	})
}

// AddItem 加入购物车
// @Summary 添加商品到购物车，已有同款时数量累加
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body dto.AddCartItemRequest true "商品与数量"
// @Success 200 {object} dto.MessageResponse
// @Router /api/cart [post]
func (ctrl *CartController) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.cartService.AddItem(ctx, req.ProductID, req.Quantity); err != nil {
		respondError(c, err, "添加失败")
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "已加入购物车"})
}

// UpdateItem 修改数量
// @Summary 修改购物车条目数量，数量归零即删除
// @Tags Cart
// @Accept json
// @Produce json
// @Param itemId path string true "条目ID"
// @Param body body dto.UpdateCartItemRequest true "新数量"
// @Success 200 {object} dto.MessageResponse
// @Router /api/cart/{itemId} [put]
func (ctrl *CartController) UpdateItem(c *gin.Context) {
	itemID := c.Param("itemId")
	if itemID == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的条目ID"})
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.cartService.UpdateItem(ctx, itemID, req.Quantity); err != nil {
		respondError(c, err, "更新失败")
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "更新成功"})
}

// RemoveItem 移除条目
// @Summary 从购物车移除一条
// @Tags Cart
// @Param itemId path string true "条目ID"
// @Success 200 {object} dto.MessageResponse
// @Router /api/cart/{itemId} [delete]
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	itemID := c.Param("itemId")
	if itemID == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的条目ID"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.cartService.RemoveItem(ctx, itemID); err != nil {
		respondError(c, err, "移除失败")
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "已移除"})
}

// ==================== 结账接口 ====================

// Preview 结账预览
// @Summary 按卖家拆分购物车并汇总金额（不下单）
// @Tags Cart
// @Success 200 {object} dto.CheckoutPreview
// @Router /api/cart/preview [get]
func (ctrl *CartController) Preview(c *gin.Context) {
	ctx := c.Request.Context()
	preview, err := ctrl.cartService.Preview(ctx)
	if err != nil {
		respondError(c, err, "预览失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    preview,
	})
}

// Checkout 结账
// @Summary 提交结账，按卖家生成多张订单，全部成功或全部失败
// @Tags Cart
// @Accept json
// @Produce json
// @Param body body dto.CheckoutRequest true "收货地址与支付方式"
// @Success 201 {object} dto.CheckoutResponse
// @Router /api/cart/checkout [post]
func (ctrl *CartController) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	orders, err := ctrl.cartService.Checkout(ctx, &req)
	if err != nil {
		respondError(c, err, "结账失败")
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "下单成功",
		"data":    gin.H{"orders": orders},
	})
}
