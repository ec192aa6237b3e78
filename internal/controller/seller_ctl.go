package controller

import (
	"io"
	"strconv"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/service"

	"github.com/gin-gonic/gin"
)

type SellerController struct {
	sellerService *service.SellerService
}

func NewSellerController(sellerService *service.SellerService) *SellerController {
	return &SellerController{sellerService: sellerService}
}

// ==================== 面板接口 ====================

// Dashboard 卖家面板
// @Summary 卖家经营面板（指标 + 近期订单）
// @Tags Seller
// @Success 200 {object} dto.SellerDashboardResponse
// @Router /api/seller/dashboard [get]
func (ctrl *SellerController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	dashboard, err := ctrl.sellerService.Dashboard(ctx)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    dashboard,
	})
}

// Products 卖家商品列表
// @Summary 当前卖家的全部商品
// @Tags Seller
// @Success 200 {object} dto.SellerProductsResponse
// @Router /api/seller/products [get]
func (ctrl *SellerController) Products(c *gin.Context) {
	ctx := c.Request.Context()
	products, err := ctrl.sellerService.Products(ctx)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"products": products},
	})
}

// ==================== 提现接口 ====================

// Withdrawals 提现记录
// @Summary 当前卖家的提现历史
// @Tags Seller
// @Success 200 {object} dto.WithdrawalsResponse
// @Router /api/seller/withdrawals [get]
func (ctrl *SellerController) Withdrawals(c *gin.Context) {
	ctx := c.Request.Context()
	withdrawals, err := ctrl.sellerService.Withdrawals(ctx)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"withdrawals": withdrawals},
	})
}

// PreviewWithdrawal 提现预览
// @Summary 按平台费率预览到账金额（不提交）
// @Tags Seller
// @Param amount query number true "提现金额"
// @Success 200 {object} dto.WithdrawalPreview
// @Router /api/seller/withdrawals/preview [get]
func (ctrl *SellerController) PreviewWithdrawal(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil || amount <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的金额"})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    ctrl.sellerService.PreviewWithdrawal(amount),
	})
}

// CreateWithdrawal 申请提现
// @Summary 卖家发起提现申请，金额不得超过可提余额
// @Tags Seller
// @Accept json
// @Produce json
// @Param body body dto.CreateWithdrawalRequest true "金额与方式"
// @Success 201 {object} dto.WithdrawalResponse
// @Router /api/seller/withdrawals [post]
func (ctrl *SellerController) CreateWithdrawal(c *gin.Context) {
	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	withdrawal, err := ctrl.sellerService.RequestWithdrawal(ctx, &req)
	if err != nil {
		respondError(c, err, "提现申请失败")
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    withdrawal,
	})
}

// ==================== 认证接口 ====================

// UploadDocuments 上传资质文档
// @Summary 上传认证材料到对象存储
// @Tags Seller
// @Accept multipart/form-data
// @Param document formData file true "材料文件"
// @Success 201 {object} map[string]interface{}
// @Router /api/seller/verification/documents [post]
func (ctrl *SellerController) UploadDocuments(c *gin.Context) {
	file, header, err := c.Request.FormFile("document")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请上传材料文件"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败"})
		return
	}

	ctx := c.Request.Context()
	url, err := ctrl.sellerService.UploadDocuments(ctx, data, header.Filename)
	if err != nil {
		respondError(c, err, "上传失败")
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"url": url},
	})
}

// SubmitVerification 提交认证
// @Summary 提交认证材料，等管理员审核
// @Tags Seller
// @Accept json
// @Produce json
// @Param body body dto.SubmitVerificationRequest true "材料地址"
// @Success 200 {object} dto.SellerResponse
// @Router /api/seller/verification [post]
func (ctrl *SellerController) SubmitVerification(c *gin.Context) {
	var req dto.SubmitVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	seller, err := ctrl.sellerService.SubmitVerification(ctx, req.Documents)
	if err != nil {
		respondError(c, err, "提交失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    seller,
	})
}
