package analytics_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// GetCustomerSegments godoc
// @Summary Get customer segments
// @Description Returns new vs returning customer counts for the selected period plus the average lifetime value of customers who ordered in the period
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=models.CustomerSegments}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/customer-segments [get]
func GetCustomerSegments(c *gin.Context) {
	log.Printf("[admin.analytics-customer-segments] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-customer-segments] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	log.Printf("[admin.analytics-customer-segments] respond 200 new=%d returning=%d",
		data.CustomerSegments.NewCustomers, data.CustomerSegments.ReturningCustomers)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Customer segments retrieved successfully", data.CustomerSegments))
}
