package analytics_controller

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"github.com/shitiandmw/e-commerce-sub001/services"
)

const defaultRangeDays = 30

var analyticsService *services.AnalyticsService

// Init wires the analytics service used by every handler in this package.
func Init(svc *services.AnalyticsService) {
	analyticsService = svc
}

// parseAnalyticsQuery reads granularity/from/to query params. Dates are
// YYYY-MM-DD; `from` is normalized to start-of-day and `to` to end-of-day so
// the inclusive range covers whole days. Defaults: last 30 days, daily.
func parseAnalyticsQuery(c *gin.Context) (models.AnalyticsQuery, error) {
	granularity := c.DefaultQuery("granularity", models.GranularityDay)
	switch granularity {
	case models.GranularityDay, models.GranularityWeek, models.GranularityMonth:
	default:
		return models.AnalyticsQuery{}, fmt.Errorf("invalid granularity %q", granularity)
	}

	now := time.Now().UTC()
	to := endOfDay(now)
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return models.AnalyticsQuery{}, fmt.Errorf("invalid to date %q", raw)
		}
		to = endOfDay(parsed)
	}

	from := startOfDay(to.AddDate(0, 0, -defaultRangeDays))
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return models.AnalyticsQuery{}, fmt.Errorf("invalid from date %q", raw)
		}
		from = startOfDay(parsed)
	}

	return models.AnalyticsQuery{Granularity: granularity, From: from, To: to}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}
