package analytics_controller

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/config"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

// ExportAnalyticsPDF godoc
// @Summary Download analytics report PDF
// @Description Generate and download a PDF report of the analytics aggregate for the selected period
// @Tags Admin - Analytics
// @Produce octet-stream
// @Security BearerAuth
// @Param granularity query string false "Bucket size" Enums(day, week, month) default(day)
// @Param from query string false "Period start (YYYY-MM-DD)"
// @Param to query string false "Period end (YYYY-MM-DD)"
// @Success 200 "PDF file"
// @Failure 400 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Failure 502 {object} models.ApiResponse
// @Router /admin/analytics/export [get]
func ExportAnalyticsPDF(c *gin.Context) {
	log.Printf("[admin.analytics-export] start")

	q, err := parseAnalyticsQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, err.Error()))
		return
	}

	ctx, cancel := config.WithAnalyticsTimeout()
	defer cancel()

	data, err := analyticsService.GetAnalytics(ctx, q)
	if err != nil {
		log.Printf("[admin.analytics-export] ERROR err=%v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse(c, "Failed to load analytics"))
		return
	}

	currency := os.Getenv("STORE_CURRENCY")
	if currency == "" {
		currency = "usd"
	}

	pdfBuffer, err := services.GenerateAnalyticsReportPDF(data, q, currency)
	if err != nil {
		log.Printf("[admin.analytics-export] ERROR pdf render err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to generate report"))
		return
	}

	// Set response headers for file download
	filename := fmt.Sprintf("analytics-%s-%s.pdf", q.From.Format("20060102"), q.To.Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Length", fmt.Sprintf("%d", pdfBuffer.Len()))

	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())

	log.Printf("[admin.analytics-export] report downloaded for %s to %s",
		q.From.Format("2006-01-02"), q.To.Format("2006-01-02"))
}
