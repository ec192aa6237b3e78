package controller

import (
	"strconv"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	adminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// ==================== 面板与列表 ====================

// Dashboard 平台面板
// @Summary 平台指标 + 待审批队列
// @Tags Admin
// @Success 200 {object} dto.AdminDashboardResponse
// @Router /api/admin/dashboard [get]
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	dashboard, err := ctrl.adminService.Dashboard(ctx)
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

// GetSellers 卖家列表
// @Summary 卖家分页列表（可按状态筛选）
// @Tags Admin
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(20)
// @Param status query string false "状态筛选 pending|approved|rejected"
// @Success 200 {object} dto.SellerListResponse
// @Router /api/admin/sellers [get]
func (ctrl *AdminController) GetSellers(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := ctrl.adminService.Sellers(ctx, parsePageQuery(c))
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

// GetWithdrawals 提现列表
// @Summary 提现分页列表（可按状态筛选）
// @Tags Admin
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(20)
// @Param status query string false "状态筛选 pending|processed|rejected"
// @Success 200 {object} dto.WithdrawalListResponse
// @Router /api/admin/withdrawals [get]
func (ctrl *AdminController) GetWithdrawals(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := ctrl.adminService.Withdrawals(ctx, parsePageQuery(c))
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

// GetUsers 用户列表
// @Summary 用户分页列表（可按角色筛选）
// @Tags Admin
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(20)
// @Param role query string false "角色筛选 buyer|seller|admin"
// @Success 200 {object} dto.UserListResponse
// @Router /api/admin/users [get]
func (ctrl *AdminController) GetUsers(c *gin.Context) {
	ctx := c.Request.Context()
	resp, err := ctrl.adminService.Users(ctx, parsePageQuery(c))
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

// ==================== 卖家审批 ====================

// ApproveSeller 通过卖家审核
// @Summary 审核通过 pending 卖家，重复审批回 409
// @Tags Admin
// @Param id path string true "卖家ID"
// @Success 200 {object} dto.SellerResponse
// @Router /api/admin/sellers/{id}/approve [put]
func (ctrl *AdminController) ApproveSeller(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的卖家ID"})
		return
	}

	ctx := c.Request.Context()
	seller, err := ctrl.adminService.ApproveSeller(ctx, id)
	if err != nil {
		respondError(c, err, "审批失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "审核通过",
		"data":    seller,
	})
}

// RejectSeller 拒绝卖家审核
// @Summary 拒绝 pending 卖家
// @Tags Admin
// @Param id path string true "卖家ID"
// @Success 200 {object} dto.SellerResponse
// @Router /api/admin/sellers/{id}/reject [put]
func (ctrl *AdminController) RejectSeller(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的卖家ID"})
		return
	}

	ctx := c.Request.Context()
	seller, err := ctrl.adminService.RejectSeller(ctx, id)
	if err != nil {
		respondError(c, err, "审批失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "已拒绝",
		"data":    seller,
	})
}

// ==================== 提现审批 ====================

// ProcessWithdrawal 处理提现
// @Summary 处理 pending 提现（扣 7% 平台费），终态
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "提现ID"
// @Param body body dto.ProcessWithdrawalRequest false "外部流水号"
// @Success 200 {object} dto.WithdrawalResponse
// @Router /api/admin/withdrawals/{id}/process [put]
func (ctrl *AdminController) ProcessWithdrawal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的提现ID"})
		return
	}

	var req dto.ProcessWithdrawalRequest
	_ = c.ShouldBindJSON(&req) // body 可选

	ctx := c.Request.Context()
	withdrawal, err := ctrl.adminService.ProcessWithdrawal(ctx, id, req.TransactionID)
	if err != nil {
		respondError(c, err, "处理失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "已处理",
		"data":    withdrawal,
	})
}

// RejectWithdrawal 拒绝提现
// @Summary 拒绝 pending 提现，余额回到卖家
// @Tags Admin
// @Param id path string true "提现ID"
// @Success 200 {object} dto.WithdrawalResponse
// @Router /api/admin/withdrawals/{id}/reject [put]
func (ctrl *AdminController) RejectWithdrawal(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的提现ID"})
		return
	}

	ctx := c.Request.Context()
	withdrawal, err := ctrl.adminService.RejectWithdrawal(ctx, id)
	if err != nil {
		respondError(c, err, "处理失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "已拒绝",
		"data":    withdrawal,
	})
}

// ==================== 内部 ====================

func parsePageQuery(c *gin.Context) *dto.PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	return &dto.PageQuery{
		Page:    page,
		PerPage: perPage,
		Status:  c.Query("status"),
		Role:    c.Query("role"),
	}
}
