package cms_routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/controllers/cms/analytics_controller"
	"github.com/shitiandmw/e-commerce-sub001/middleware"
)

// SetupAnalyticsRoutes registers the analytics endpoints behind admin auth.
func SetupAnalyticsRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	analytics.Use(middleware.AuthMiddleware())

	analytics.GET("/overview", analytics_controller.GetAnalyticsOverview)
	analytics.GET("/sales-trend", analytics_controller.GetSalesTrend)
	analytics.GET("/top-products", analytics_controller.GetTopProducts)
	analytics.GET("/customer-segments", analytics_controller.GetCustomerSegments)
	analytics.GET("/revenue-by-brand", analytics_controller.GetRevenueByBrand)
	analytics.GET("/revenue-by-category", analytics_controller.GetRevenueByCategory)
	analytics.GET("/export", analytics_controller.ExportAnalyticsPDF)
}
