package controller

import (
	"io"
	"strconv"

	"marketfront_v1/internal/api/dto"
	"marketfront_v1/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *service.ProductService
}

func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ==================== 查询接口 ====================

// GetProducts 获取商品列表
// @Summary 商品列表（分页 + 分类/搜索/排序）
// @Tags Product
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(12)
// @Param category query string false "分类筛选"
// @Param search query string false "名称搜索"
// @Param sort query string false "排序 name|price_asc|price_desc|newest"
// @Success 200 {object} dto.ProductListResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "12"))

	q := &dto.ProductListQuery{
		Page:     page,
		PerPage:  perPage,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}

	ctx := c.Request.Context()
	resp, err := ctrl.productService.ListProducts(ctx, q)
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

// GetProduct 获取商品详情
// @Summary 单商品详情（含评价）
// @Tags Product
// @Param id path string true "商品ID"
// @Success 200 {object} model.Product
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.GetProduct(ctx, id)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// GetCategories 获取分类列表
// @Summary 所有商品分类
// @Tags Product
// @Success 200 {object} dto.CategoriesResponse
// @Router /api/products/categories [get]
func (ctrl *ProductController) GetCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := ctrl.productService.GetCategories(ctx)
	if err != nil {
		respondError(c, err, "查询失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    gin.H{"categories": categories},
	})
}

// ==================== CRUD 接口 ====================

// CreateProduct 创建商品
// @Summary 卖家创建商品（需已过审）
// @Tags Product
// @Accept json
// @Produce json
// @Param body body dto.CreateProductRequest true "商品信息"
// @Success 201 {object} dto.ProductResponse
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.CreateProduct(ctx, &req)
	if err != nil {
		respondError(c, err, "创建失败")
		return
	}

	c.JSON(201, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// UpdateProduct 更新商品
// @Summary 卖家更新自己的商品（部分字段）
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param body body dto.UpdateProductRequest true "更新内容"
// @Success 200 {object} dto.ProductResponse
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.UpdateProduct(ctx, id, &req)
	if err != nil {
		respondError(c, err, "更新失败")
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    product,
	})
}

// DeleteProduct 删除商品
// @Summary 卖家删除自己的商品
// @Tags Product
// @Param id path string true "商品ID"
// @Success 200 {object} dto.MessageResponse
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.productService.DeleteProduct(ctx, id); err != nil {
		respondError(c, err, "删除失败")
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "删除成功"})
}

// ==================== 图片接口 ====================

// UploadImage 上传商品图片
// @Summary 上传商品图片到对象存储，返回公开URL
// @Tags Product
// @Accept multipart/form-data
// @Param image formData file true "图片文件"
// @Success 201 {object} map[string]interface{}
// @Router /api/products/images [post]
func (ctrl *ProductController) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "请上传图片文件"})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "读取文件失败"})
		return
	}

	ctx := c.Request.Context()
	url, err := ctrl.productService.UploadProductImage(ctx, imageData, header.Filename)
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

// ==================== 评价接口 ====================

// CreateReview 提交商品评价
// @Summary 买家给商品打分评价（1-5 星）
// @Tags Product
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param body body dto.CreateReviewRequest true "评价内容"
// @Success 201 {object} dto.MessageResponse
// @Router /api/products/{id}/reviews [post]
func (ctrl *ProductController) CreateReview(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "参数错误: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.productService.AddReview(ctx, id, &req); err != nil {
		respondError(c, err, "评价失败")
		return
	}

	c.JSON(201, gin.H{"code": 0, "message": "评价成功"})
}
