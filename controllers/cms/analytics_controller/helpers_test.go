package analytics_controller

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shitiandmw/e-commerce-sub001/models"
)

func contextWithQuery(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin/analytics/overview?"+rawQuery, nil)
	return c
}

func TestParseAnalyticsQueryExplicitRange(t *testing.T) {
	c := contextWithQuery("granularity=week&from=2024-01-01&to=2024-01-31")

	q, err := parseAnalyticsQuery(c)
	require.NoError(t, err)

	assert.Equal(t, models.GranularityWeek, q.Granularity)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), q.From)
	assert.Equal(t, time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC), q.To)
}

func TestParseAnalyticsQueryDefaults(t *testing.T) {
	c := contextWithQuery("")

	q, err := parseAnalyticsQuery(c)
	require.NoError(t, err)

	assert.Equal(t, models.GranularityDay, q.Granularity)
	assert.Equal(t, 23, q.To.Hour(), "to defaults to end of today")
	assert.Equal(t, 0, q.From.Hour(), "from is start-of-day")
	assert.Equal(t, q.To.AddDate(0, 0, -defaultRangeDays).Format("2006-01-02"), q.From.Format("2006-01-02"))
}

func TestParseAnalyticsQueryRejectsBadInput(t *testing.T) {
	_, err := parseAnalyticsQuery(contextWithQuery("granularity=hourly"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "granularity")

	_, err = parseAnalyticsQuery(contextWithQuery("from=01-02-2024"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")

	_, err = parseAnalyticsQuery(contextWithQuery("to=2024/01/31"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to")
}
