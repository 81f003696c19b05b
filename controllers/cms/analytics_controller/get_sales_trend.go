package analytics_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// GetSalesTrend godoc
// @Summary Get sales trend
// @Description Returns the time-bucketed revenue and order count series for the selected period. Buckets with no orders are present with zero values; an empty or inverted range returns an empty series
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=[]models.SalesTrendPoint}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/sales-trend [get]
func GetSalesTrend(c *gin.Context) {
	log.Printf("[admin.analytics-sales-trend] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-sales-trend] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	log.Printf("[admin.analytics-sales-trend] respond 200 buckets=%d", len(data.SalesTrend))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Sales trend retrieved successfully", data.SalesTrend))
}
