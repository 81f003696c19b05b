package analytics_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// GetTopProducts godoc
// @Summary Get top performing products
// @Description Returns up to 10 products by revenue descending for the selected period. Items are grouped by product title, so distinct products sharing a title merge into one entry
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 {object} models.ApiResponse{data=[]models.TopProduct}
// @Failure 400 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/top-products [get]
func GetTopProducts(c *gin.Context) {
	log.Printf("[admin.analytics-top-products] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-top-products] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	log.Printf("[admin.analytics-top-products] respond 200 products=%d", len(data.TopProducts))

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Top products retrieved successfully", data.TopProducts))
}
