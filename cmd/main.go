package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketfront_v1/internal/controller"
	"marketfront_v1/internal/model"
	"marketfront_v1/internal/policy"
	"marketfront_v1/internal/query"
	"marketfront_v1/internal/repository"
	"marketfront_v1/internal/router"
	"marketfront_v1/internal/service"
	"marketfront_v1/internal/session"
	"marketfront_v1/internal/task"
	"marketfront_v1/pkg/database"
	"marketfront_v1/pkg/rest"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	// 1. 初始化本地数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 恢复持久化会话
	restoreSession(deps)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, deps.Session, deps.Repos.MutationLog)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	API         *rest.Client
	Session     *session.Session
	Cache       *query.Cache
	Controllers *router.Controllers
	Services    *Services
}

// Repositories 仓库集合
type Repositories struct {
	Credential  repository.CredentialRepository
	MutationLog repository.MutationLogRepository
}

// Services 服务集合
type Services struct {
	Product *service.ProductService
	Cart    *service.CartService
	Order   *service.OrderService
	Seller  *service.SellerService
	Admin   *service.AdminService
	Storage *service.StorageService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化本地数据库（凭证单槽 + 变更审计表）
func initDatabase() *gorm.DB {
	return database.InitDB(database.Options{
		SQLitePath:  getEnv("LOCAL_DB_PATH", "marketfront.db"),
		PostgresDSN: getEnv("LOCAL_DB_DSN", ""),
	},
		&model.Credential{},
		&model.MutationLog{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Credential:  repository.NewCredentialRepository(db),
		MutationLog: repository.NewMutationLogRepository(db),
	}

	// -------- 会话与上游客户端 --------
	// 两段式装配：客户端拿会话当 TokenSource，会话再拿客户端调认证接口
	sess := session.New(repos.Credential)
	api := rest.NewClient(&rest.Config{
		BaseURL: getEnv("API_BASE_URL", "http://localhost:5000/api"),
		Debug:   getEnv("API_DEBUG", "") == "true",
	}, sess)
	sess.BindClient(api)

	// -------- 查询缓存 --------
	cache := query.NewCache()
	sess.OnLogout(cache.Clear)

	// -------- 访问策略 --------
	pol := policy.New(policy.DeliveredAuthority(getEnv("DELIVERED_AUTHORITY", "admin")))

	// -------- 存储服务 --------
	storageSvc := initStorageService()

	// -------- 业务服务 --------
	services := &Services{Storage: storageSvc}
	services.Product = service.NewProductService(api, cache, sess, pol, storageSvc)
	services.Cart = service.NewCartService(api, cache, sess, pol)
	services.Order = service.NewOrderService(api, cache, sess, pol)
	services.Seller = service.NewSellerService(api, cache, sess, pol, storageSvc)
	services.Admin = service.NewAdminService(api, cache, sess, pol)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:    controller.NewAuthController(sess),
		Product: controller.NewProductController(services.Product),
		Cart:    controller.NewCartController(services.Cart),
		Order:   controller.NewOrderController(services.Order),
		Seller:  controller.NewSellerController(services.Seller),
		Admin:   controller.NewAdminController(services.Admin),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		API:         api,
		Session:     sess,
		Cache:       cache,
		Controllers: controllers,
		Services:    services,
	}
}

// initStorageService 初始化存储服务
func initStorageService() *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "marketfront"),
		LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		LocalURL:  getEnv("STORAGE_LOCAL_URL", ""),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storageSvc
}

// restoreSession 进程启动时尝试用持久化凭证恢复会话
func restoreSession(deps *Dependencies) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := deps.Session.Restore(ctx); err != nil {
		log.Printf("警告: 会话恢复失败: %v", err)
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 会话保活
	sessionTask := task.NewSessionTask(deps.Session)
	sessionTask.Start()

	// 审计日志清理
	cleanupTask := task.NewAuditCleanupTask(deps.Repos.MutationLog, 0)
	cleanupTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
