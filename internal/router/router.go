package router

import (
	"fmt"

	"github.com/sabai-next/internal/cache"
	"github.com/sabai-next/internal/config"
	publichandlers "github.com/sabai-next/internal/http/handlers/public"
	"github.com/sabai-next/internal/http/response"
	"github.com/sabai-next/internal/logger"
	"github.com/sabai-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cache.Prefix()),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "too many login attempts, try again later",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(SessionMiddleware(c.SessionStore, cfg.Session.CookieName))

	api := r.Group("/api")
	{
		// 账号
		api.POST("/register", publicHandler.Register)
		api.POST("/login",
			RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")),
			publicHandler.Login)
		api.POST("/logout", RequireAuth(), publicHandler.Logout)
		api.GET("/me", RequireAuth(), publicHandler.Me)
		api.GET("/check-auth", publicHandler.CheckAuth)
		api.POST("/update-email", RequireAuth(), publicHandler.UpdateEmail)

		// 收货资料（读公开、写仅本人）
		api.GET("/profile/:id", publicHandler.GetProfile)
		api.POST("/profile/:id", RequireAuth(), publicHandler.UpsertProfile)

		// 商品目录
		api.GET("/brands", publicHandler.ListBrands)
		api.GET("/products", publicHandler.ListProducts)
		api.GET("/products/:id", publicHandler.GetProduct)

		// 购物车与结账
		api.GET("/cart", RequireAuth(), publicHandler.GetCart)
		api.POST("/cart", RequireAuth(), publicHandler.AddToCart)
		api.POST("/cart/clear", RequireAuth(), publicHandler.ClearCart)
		api.GET("/checkout", RequireAuth(), publicHandler.CheckoutSummary)
		api.POST("/checkout", RequireAuth(), publicHandler.Checkout)

		// 订单
		api.GET("/orders", RequireAuth(), publicHandler.ListOrders)
		api.GET("/orders/:id", RequireAuth(), publicHandler.GetOrder)
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return r
}
