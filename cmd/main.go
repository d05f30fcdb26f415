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

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shipops_dev_v1/internal/controller"
	"shipops_dev_v1/internal/middleware"
	"shipops_dev_v1/internal/model"
	"shipops_dev_v1/internal/repository"
	"shipops_dev_v1/internal/router"
	"shipops_dev_v1/internal/service"
	"shipops_dev_v1/internal/task"
	"shipops_dev_v1/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Direct      repository.DirectConnectionRepository
	Setting     repository.SettingRepository
	Box         repository.BoxConfigRepository
	BoxFeedback repository.BoxFitFeedbackRepository
	Product     repository.ProductRepository
	RateShopper repository.RateShopperRepository
	WeightRule  repository.WeightRuleRepository
	Mapping     repository.MethodMappingRepository
	PickCart    repository.PickCartRepository
}

// Services 服务集合
type Services struct {
	Auth       *service.AuthService
	ShipEngine *service.ShipEngineClient
	UPS        *service.UPSDirectClient
	FedEx      *service.FedExDirectClient
	Labels     *service.LabelStorageService
	Unify      *service.UnifyService
	Direct     *service.DirectConnectionService
	Settings   *service.SettingsService
	BoxFit     *service.BoxFitService
	Product    *service.ProductService
	Routing    *service.RoutingService
	Pick       *service.PickCartService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=postgres password=postgres dbname=shipops port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Carrier
		&model.DirectConnection{},
		// Setting
		&model.Setting{},
		// BoxFit
		&model.BoxConfig{}, &model.BoxFitFeedback{},
		// Product
		&model.Product{},
		// Routing
		&model.RateShopper{}, &model.WeightRule{}, &model.ShippingMethodMapping{},
		// Warehouse
		&model.PickCart{}, &model.PickCell{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- 认证 --------
	jwtCfg := middleware.DefaultJWTConfig()
	jwtCfg.SecretKey = getEnv("JWT_SECRET_KEY", jwtCfg.SecretKey)
	middleware.SetJWTConfig(jwtCfg)

	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 外部客户端 --------
	shipEngine := service.NewShipEngineClient(service.ShipEngineConfig{
		BaseURL: getEnv("SHIPENGINE_BASE_URL", ""),
		APIKey:  getEnv("SHIPENGINE_API_KEY", ""),
	})
	upsClient := service.NewUPSDirectClient()
	fedexClient := service.NewFedExDirectClient()
	labelStorage := initLabelStorage()

	// -------- 业务服务 --------
	services := &Services{
		ShipEngine: shipEngine,
		UPS:        upsClient,
		FedEx:      fedexClient,
		Labels:     labelStorage,
	}

	services.Auth = service.NewAuthService(service.AdminCredentials{
		Username: getEnv("ADMIN_USERNAME", "admin"),
		// 支持 bcrypt 哈希或明文，生产环境应配置哈希
		Password: getEnv("ADMIN_PASSWORD", "admin123"),
	})
	services.Unify = service.NewUnifyService(shipEngine, repos.Direct)
	services.Direct = service.NewDirectConnectionService(
		repos.Direct, shipEngine, labelStorage, services.Unify,
		upsClient, fedexClient,
	)
	services.Settings = service.NewSettingsService(repos.Setting)
	services.BoxFit = service.NewBoxFitService(repos.Box, repos.BoxFeedback, repos.Product)
	services.Product = service.NewProductService(repos.Product, services.BoxFit)
	services.Routing = service.NewRoutingService(repos.RateShopper, repos.WeightRule, repos.Mapping)
	services.Pick = service.NewPickCartService(repos.PickCart)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Direct:      repository.NewDirectConnectionRepository(db),
		Setting:     repository.NewSettingRepository(db),
		Box:         repository.NewBoxConfigRepository(db),
		BoxFeedback: repository.NewBoxFitFeedbackRepository(db),
		Product:     repository.NewProductRepository(db),
		RateShopper: repository.NewRateShopperRepository(db),
		WeightRule:  repository.NewWeightRuleRepository(db),
		Mapping:     repository.NewMethodMappingRepository(db),
		PickCart:    repository.NewPickCartRepository(db),
	}
}

// initLabelStorage 初始化标签存储
func initLabelStorage() *service.LabelStorageService {
	labelStorage, err := service.NewLabelStorageService(&service.LabelStorageConfig{
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", "us-east-1"),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "shipops"),
	})
	if err != nil {
		// 未配置存储时 test-label 仍可用，只是不落盘
		log.Printf("警告: 标签存储初始化失败: %v", err)
		return nil
	}
	return labelStorage
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:    controller.NewAuthController(svc.Auth),
		Carrier: controller.NewCarrierController(svc.Unify, svc.ShipEngine),
		Direct:  controller.NewDirectController(svc.Direct),
		Setting: controller.NewSettingController(svc.Settings),
		Box:     controller.NewBoxController(svc.BoxFit),
		Product: controller.NewProductController(svc.Product),
		Routing: controller.NewRoutingController(svc.Routing),
		Pick:    controller.NewPickCartController(svc.Pick),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 承运商账户保活
	syncTask := task.NewCarrierSyncTask(
		deps.Services.Unify,
		deps.Repos.Direct,
		deps.Services.UPS,
		deps.Services.FedEx,
	)
	syncTask.Start()

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
