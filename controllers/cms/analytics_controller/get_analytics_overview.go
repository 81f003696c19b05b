package analytics_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// GetAnalyticsOverview godoc
// @Summary Get analytics overview
// @Description Returns KPI summary for the selected period: total revenue, orders, average order value, each with the change versus the preceding period of equal length
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.AnalyticsOverview}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/overview [get]
func GetAnalyticsOverview(c *gin.Context) {
	log.Printf("[admin.analytics-overview] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-overview] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	overview := models.AnalyticsOverview{
		TotalRevenue:      data.TotalRevenue,
		RevenueChange:     data.RevenueChange,
		TotalOrders:       data.TotalOrders,
		OrdersChange:      data.OrdersChange,
		AverageOrderValue: data.AverageOrderValue,
		AOVChange:         data.AOVChange,
	}

	log.Printf("[admin.analytics-overview] respond 200 revenue=%.2f orders=%d aov=%.2f",
		overview.TotalRevenue, overview.TotalOrders, overview.AverageOrderValue)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Analytics overview retrieved successfully", overview))
}
