package analytics_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// GetRevenueByBrand godoc
// @Summary Get revenue by brand
// @Description Returns up to 10 brands by attributed revenue descending for the selected period. Line items whose product cannot be matched fall under "Unbranded"
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=[]models.RevenueBreakdownItem}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/revenue-by-brand [get]
func GetRevenueByBrand(c *gin.Context) {
	log.Printf("[admin.analytics-revenue-by-brand] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-revenue-by-brand] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	log.Printf("[admin.analytics-revenue-by-brand] respond 200 brands=%d", len(data.RevenueByBrand))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Revenue by brand retrieved successfully", data.RevenueByBrand))
}

// GetRevenueByCategory godoc
// @Summary Get revenue by category
// @Description Returns up to 10 categories by attributed revenue descending for the selected period. Only a product's first category counts; unmatched line items fall under "Uncategorized"
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=[]models.RevenueBreakdownItem}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/revenue-by-category [get]
func GetRevenueByCategory(c *gin.Context) {
	log.Printf("[admin.analytics-revenue-by-category] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-revenue-by-category] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	log.Printf("[admin.analytics-revenue-by-category] respond 200 categories=%d", len(data.RevenueByCategory))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Revenue by category retrieved successfully", data.RevenueByCategory))
}
