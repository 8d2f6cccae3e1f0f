package main

import (
	"context"
	"net/http"
	"time"

	"agromap-backend/internal/shared/middleware"
	"agromap-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupAdminRoutes(v1, c)
		setupMarketRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupTemplateRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupRatingRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(c.JWTManager))
		protected.GET("/profile", c.UserHandler.Profile)
		protected.PUT("/profile", c.UserHandler.UpdateProfile)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminOnly())
	{
		admin.GET("/stats", c.AdminHandler.Stats)
		admin.GET("/activity", c.AdminHandler.Activity)
		admin.GET("/markets", c.AdminHandler.Markets)
		admin.GET("/products", c.AdminHandler.Products)
		admin.GET("/products/export", c.AdminHandler.ExportProducts)
		admin.GET("/comments", c.AdminHandler.Comments)

		admin.GET("/users", c.UserHandler.List)
		admin.POST("/users", c.UserHandler.Create)
		admin.PUT("/users/:id/role", c.UserHandler.ChangeRole)
		admin.DELETE("/users/:id", c.UserHandler.Delete)
	}
}

// ========================================
// MARKET ROUTES
// ========================================
func setupMarketRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)

	markets := v1.Group("/markets")
	{
		markets.GET("", c.MarketHandler.List)
		markets.GET("/provinces", c.MarketHandler.Provinces)
		markets.GET("/mine", auth, middleware.ManagerOrAdmin(), c.MarketHandler.Mine)
		markets.GET("/:id", c.MarketHandler.Get)
		markets.GET("/:id/status", c.MarketHandler.Status)

		markets.POST("", auth, middleware.ManagerOrAdmin(), c.MarketHandler.Create)
		markets.PUT("/:id", auth, middleware.ManagerOrAdmin(), c.MarketHandler.Update)
		markets.DELETE("/:id", auth, middleware.AdminOnly(), c.MarketHandler.Delete)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := middleware.AuthMiddleware(c.JWTManager)

	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/mine", auth, middleware.ManagerOrAdmin(), c.ProductHandler.Mine)
		products.GET("/:id", c.ProductHandler.Get)

		products.POST("", auth, middleware.ManagerOrAdmin(), c.ProductHandler.Create)
		products.PUT("/:id", auth, middleware.ManagerOrAdmin(), c.ProductHandler.Update)
		products.DELETE("/:id", auth, middleware.ManagerOrAdmin(), c.ProductHandler.Delete)
	}
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	categories := v1.Group("/categories")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.Get)

		admin := categories.Group("")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminOnly())
		admin.POST("", c.CategoryHandler.Create)
		admin.PUT("/:id", c.CategoryHandler.Update)
		admin.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// ========================================
// TEMPLATE ROUTES
// ========================================
func setupTemplateRoutes(v1 *gin.RouterGroup, c *container.Container) {
	templates := v1.Group("/templates")
	{
		templates.GET("", c.TemplateHandler.List)
		templates.GET("/:id", c.TemplateHandler.Get)

		admin := templates.Group("")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminOnly())
		admin.POST("", c.TemplateHandler.Create)
		admin.PUT("/:id", c.TemplateHandler.Update)
		admin.DELETE("/:id", c.TemplateHandler.Delete)
	}
}

// ========================================
// COMMENT ROUTES
// ========================================
func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	comments := v1.Group("/comments")
	{
		// likedByMe is filled in when a valid token is present
		comments.GET("/by-product/:productId", middleware.OptionalAuthMiddleware(c.JWTManager), c.CommentHandler.ListByProduct)

		protected := comments.Group("")
		protected.Use(middleware.AuthMiddleware(c.JWTManager))
		protected.POST("", c.CommentHandler.Create)
		protected.PUT("/:id", c.CommentHandler.Update)
		protected.DELETE("/:id", c.CommentHandler.Delete)
		protected.POST("/:id/like", c.CommentHandler.Like)
		protected.POST("/:id/unlike", c.CommentHandler.Unlike)
	}
}

// ========================================
// RATING ROUTES
// ========================================
func setupRatingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	ratings := v1.Group("/ratings")
	{
		ratings.GET("/by-product/:productId/stats", c.RatingHandler.Stats)

		protected := ratings.Group("")
		protected.Use(middleware.AuthMiddleware(c.JWTManager))
		protected.POST("", c.RatingHandler.Rate)
		protected.GET("/by-product/:productId", c.RatingHandler.Mine)
		protected.DELETE("/:id", c.RatingHandler.Delete)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   getEnv("APP_VERSION", "1.0.0"),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
		} else if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
		}

		// Check cache
		cacheStatus := "ok"
		if appCtx.Cache == nil {
			cacheStatus = "disconnected"
		} else if err := appCtx.Cache.Ping(ctx); err != nil {
			cacheStatus = "error: " + err.Error()
		} else if appCtx.Redis == nil {
			cacheStatus = "in-memory"
		}

		// Check object storage
		storageStatus := "ok"
		if appCtx.Storage == nil {
			storageStatus = "disconnected"
		} else if err := appCtx.Storage.HealthCheck(ctx); err != nil {
			storageStatus = "error: " + err.Error()
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"cache":    cacheStatus,
			"storage":  storageStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
			health["status"] = "degraded"
		} else if storageStatus != "ok" || (cacheStatus != "ok" && cacheStatus != "in-memory") {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}
