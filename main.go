// @title Commerce Analytics API
// @version 1.0
// @description Admin analytics and storefront passthrough over a commerce platform REST API
// @host localhost:8081
// @BasePath /api/v1
// @schemes http
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	analytics_cache "github.com/shitiandmw/e-commerce-sub001/cache"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/controllers/cms/analytics_controller"
	"github.com/shitiandmw/e-commerce-sub001/controllers/ecommerce/category_controller"
	"github.com/shitiandmw/e-commerce-sub001/controllers/ecommerce/product_controller"
	_ "github.com/shitiandmw/e-commerce-sub001/docs"
	"github.com/shitiandmw/e-commerce-sub001/middleware"
	"github.com/shitiandmw/e-commerce-sub001/routes/cms_routes"
	"github.com/shitiandmw/e-commerce-sub001/routes/ecommerce_routes"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	// Redis connection (rate limiter backend)
	config.ConnectRedis()

	// ✅ Initialize JWT Service for Admin Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ JWT_SECRET environment variable not set")
	}
	if err := services.InitJWTService(jwtSecret); err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	log.Println("✅ JWT Service initialized")

	// ✅ Commerce API client + analytics service
	commerceCfg := config.LoadCommerceConfig()
	commerceClient := services.NewCommerceClient(commerceCfg)
	cache := analytics_cache.New(analytics_cache.DefaultTTL, analytics_cache.SystemClock())
	analyticsService := services.NewAnalyticsService(commerceClient, cache)

	analytics_controller.Init(analyticsService)
	product_controller.Init(commerceClient)
	category_controller.Init(commerceClient)
	log.Println("✅ Commerce client initialized:", commerceCfg.BaseURL)

	corsCfg := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"}, // Expose these headers for downloads
	}

	router := gin.Default()
	router.Use(cors.New(corsCfg))

	// Register API routes
	api := router.Group("/api/v1")

	// ✅ Setup Admin Routes (at /api/v1/admin prefix)
	cms_routes.SetupAdminRoutes(api)
	log.Println("✅ Admin routes registered")

	// Analytics routes (at /api/v1/admin prefix, rate limited)
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RateLimiter(100, time.Minute))
	cms_routes.SetupAnalyticsRoutes(adminGroup)

	// Public storefront (no rate limiter)
	ecommerce_routes.SetupStorefrontRoutes(api)

	// Swagger docs
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	fmt.Println("🚀 Server is running on http://localhost:8081")
	router.Run(":8081")
}
