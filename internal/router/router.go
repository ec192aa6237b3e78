package router

import (
	"marketfront_v1/internal/controller"
	"marketfront_v1/internal/middleware"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/repository"
	"marketfront_v1/internal/session"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "marketfront_v1/docs"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Auth    *controller.AuthController
	Product *controller.ProductController
	Cart    *controller.CartController
	Order   *controller.OrderController
	Seller  *controller.SellerController
	Admin   *controller.AdminController
}

// SetupRouter 注册所有路由
// 五个视图各占一个路由组：商品目录（公开）、购物车、订单、卖家面板、管理员面板
func SetupRouter(ctls *Controllers, sess *session.Session, auditLogs repository.MutationLogRepository) *gin.Engine {
	r := gin.Default()

	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	api.Use(middleware.MutationAudit(auditLogs))
	{
		// auth 会话组
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.SingleShot("login"), ctls.Auth.Login)
			auth.POST("/register", middleware.SingleShot("register"), ctls.Auth.Register)
			auth.POST("/logout", ctls.Auth.Logout)
			auth.GET("/me", ctls.Auth.Me)
			auth.PUT("/profile", middleware.SessionAuth(sess), ctls.Auth.UpdateProfile)
		}

		// products 商品目录，浏览不需要登录
		products := api.Group("/products")
		{
			products.GET("", ctls.Product.GetProducts)
			products.GET("/categories", ctls.Product.GetCategories)
			products.GET("/:id", ctls.Product.GetProduct)

			// 写操作要登录
			authed := products.Group("")
			authed.Use(middleware.SessionAuth(sess))
			{
				authed.POST("", middleware.RequireRole(model.RoleSeller), ctls.Product.CreateProduct)
				authed.PUT("/:id", middleware.RequireRole(model.RoleSeller), ctls.Product.UpdateProduct)
				authed.DELETE("/:id", middleware.RequireRole(model.RoleSeller), ctls.Product.DeleteProduct)
				authed.POST("/images", middleware.RequireRole(model.RoleSeller), ctls.Product.UploadImage)
				authed.POST("/:id/reviews", middleware.RequireRole(model.RoleBuyer), ctls.Product.CreateReview)
			}
		}

		// cart 购物车视图，仅买家
		cart := api.Group("/cart")
		cart.Use(middleware.SessionAuth(sess), middleware.RequireRole(model.RoleBuyer))
		{
			cart.GET("", ctls.Cart.GetCart)
			cart.POST("", ctls.Cart.AddItem)
			cart.PUT("/:itemId", ctls.Cart.UpdateItem)
			cart.DELETE("/:itemId", ctls.Cart.RemoveItem)
			cart.GET("/preview", ctls.Cart.Preview)
			cart.POST("/checkout", middleware.SingleShot("checkout"), ctls.Cart.Checkout)
		}

		// orders 订单视图，各角色可见范围由上游过滤
		orders := api.Group("/orders")
		orders.Use(middleware.SessionAuth(sess))
		{
			orders.GET("", ctls.Order.GetOrders)
			orders.GET("/:id", ctls.Order.GetOrder)
			orders.PUT("/:id/status", middleware.SingleShot("order_status"), ctls.Order.UpdateStatus)
		}

		// seller 卖家面板
		seller := api.Group("/seller")
		seller.Use(middleware.SessionAuth(sess), middleware.RequireRole(model.RoleSeller))
		{
			seller.GET("/dashboard", ctls.Seller.Dashboard)
			seller.GET("/products", ctls.Seller.Products)
			seller.GET("/withdrawals", ctls.Seller.Withdrawals)
			seller.GET("/withdrawals/preview", ctls.Seller.PreviewWithdrawal)
			seller.POST("/withdrawals", middleware.SingleShot("withdrawal"), ctls.Seller.CreateWithdrawal)
			seller.POST("/verification/documents", ctls.Seller.UploadDocuments)
			seller.POST("/verification", middleware.SingleShot("verification"), ctls.Seller.SubmitVerification)
		}

		// admin 管理员面板
		admin := api.Group("/admin")
		admin.Use(middleware.SessionAuth(sess), middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/dashboard", ctls.Admin.Dashboard)
			admin.GET("/sellers", ctls.Admin.GetSellers)
			admin.GET("/withdrawals", ctls.Admin.GetWithdrawals)
			admin.GET("/users", ctls.Admin.GetUsers)
			admin.PUT("/sellers/:id/approve", middleware.SingleShot("seller_review"), ctls.Admin.ApproveSeller)
			admin.PUT("/sellers/:id/reject", middleware.SingleShot("seller_review"), ctls.Admin.RejectSeller)
			admin.PUT("/withdrawals/:id/process", middleware.SingleShot("withdrawal_review"), ctls.Admin.ProcessWithdrawal)
			admin.PUT("/withdrawals/:id/reject", middleware.SingleShot("withdrawal_review"), ctls.Admin.RejectWithdrawal)
		}
	}

	return r
}
