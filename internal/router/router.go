package router

import (
	"github.com/gin-gonic/gin"

	"shipops_dev_v1/internal/controller"
	"shipops_dev_v1/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Auth    *controller.AuthController
	Carrier *controller.CarrierController
	Direct  *controller.DirectController
	Setting *controller.SettingController
	Box     *controller.BoxController
	Product *controller.ProductController
	Routing *controller.RoutingController
	Pick    *controller.PickCartController
}

// SetupRouter 注册所有路由
func SetupRouter(c *Controllers) *gin.Engine {
	r := gin.Default()

	// 健康检查（不走鉴权）
	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	// auth 登录与刷新（不走鉴权）
	auth := r.Group("/api/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.RefreshToken)
	}

	// API 路由组，全部要求登录
	api := r.Group("/api")
	api.Use(middleware.JWTAuth())
	{
		api.GET("/auth/profile", c.Auth.Profile)

		// carriers 统一承运商账户
		carriers := api.Group("/carriers")
		{
			// GET /api/carriers?refresh=true 强刷走冷却限流
			carriers.GET("", middleware.RefreshCooldown("carriers:refresh", 0), c.Carrier.GetCarriers)
			carriers.POST("/connect", c.Carrier.ConnectCarrier)
			carriers.DELETE("/connect", c.Carrier.DisconnectCarrier)

			// 直连凭证：GET 列表 + POST 动作分发
			carriers.GET("/direct", c.Direct.GetConnections)
			carriers.POST("/direct", c.Direct.HandleAction)
		}

		// settings 设置
		settings := api.Group("/settings")
		{
			settings.GET("", c.Setting.GetSettings)
			settings.POST("", c.Setting.UpsertSetting)
			settings.GET("/selected-services", c.Setting.GetSelectedServices)
			settings.POST("/selected-services", c.Setting.SaveSelectedServices)
		}

		// box-config 箱型与装箱矩阵
		boxes := api.Group("/box-config")
		{
			boxes.GET("", c.Box.GetBoxes)
			boxes.POST("", c.Box.SaveBox)
			boxes.DELETE("/:id", c.Box.DeleteBox)
			boxes.POST("/reorder", c.Box.ReorderBoxes)
			boxes.POST("/feedback", c.Box.SaveFeedback)
			boxes.GET("/matrix", c.Box.GetMatrix)
		}

		// products 产品目录
		products := api.Group("/products")
		{
			products.GET("", c.Product.GetProducts)
			products.POST("", c.Product.CreateProduct)
			products.PUT("/:id", c.Product.UpdateProduct)
			products.DELETE("/:id", c.Product.DeleteProduct)
		}

		// rate-shoppers 比价策略
		shoppers := api.Group("/rate-shoppers")
		{
			shoppers.GET("", c.Routing.GetRateShoppers)
			shoppers.POST("", c.Routing.CreateRateShopper)
			shoppers.PUT("/:id", c.Routing.UpdateRateShopper)
			shoppers.DELETE("/:id", c.Routing.DeleteRateShopper)
		}

		// weight-rules 重量规则
		rules := api.Group("/weight-rules")
		{
			rules.GET("", c.Routing.GetWeightRules)
			rules.POST("", c.Routing.CreateWeightRule)
			rules.PUT("/:id", c.Routing.UpdateWeightRule)
			rules.DELETE("/:id", c.Routing.DeleteWeightRule)
			rules.GET("/resolve", c.Routing.ResolveWeightRule)
		}

		// shipping-method-mappings 运输方式映射
		mappings := api.Group("/shipping-method-mappings")
		{
			mappings.GET("", c.Routing.GetMethodMappings)
			mappings.POST("", c.Routing.CreateMethodMapping)
			mappings.PUT("/:id", c.Routing.UpdateMethodMapping)
			mappings.DELETE("/:id", c.Routing.DeleteMethodMapping)
		}

		// pick-carts 拣货车
		carts := api.Group("/pick-carts")
		{
			carts.GET("", c.Pick.GetCarts)
			carts.POST("", c.Pick.CreateCart)
			carts.PUT("/:id", c.Pick.UpdateCart)
			carts.DELETE("/:id", c.Pick.DeleteCart)
			carts.POST("/reorder", c.Pick.ReorderCarts)
		}
	}

	return r
}
