package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analytics_cache "github.com/shitiandmw/e-commerce-sub001/cache"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

// fakeCommerceAPI serves canned data so aggregation is deterministic.
type fakeCommerceAPI struct {
	orders    []models.Order
	products  []models.Product
	customers []models.Customer
	err       error
}

func (f *fakeCommerceAPI) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return f.orders, f.err
}

func (f *fakeCommerceAPI) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.err
}

func (f *fakeCommerceAPI) ListAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return f.customers, f.err
}

func newTestService(api *fakeCommerceAPI) *AnalyticsService {
	return NewAnalyticsService(api, analytics_cache.New(analytics_cache.DefaultTTL, analytics_cache.SystemClock()))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}

func ptrInt64(v int64) *int64 { return &v }

func order(id string, created time.Time, total int64, customerID string, items ...models.OrderItem) models.Order {
	return models.Order{
		ID:           id,
		CreatedAt:    created,
		Total:        total,
		CurrencyCode: "usd",
		CustomerID:   customerID,
		Items:        items,
	}
}

func TestPercentChange(t *testing.T) {
	assert.Equal(t, float64(100), percentChange(50, 0), "zero previous with positive current")
	assert.Equal(t, float64(0), percentChange(0, 0), "zero previous with zero current")
	assert.Equal(t, float64(100), percentChange(100, 50))
	assert.Equal(t, float64(-50), percentChange(50, 100))
	assert.Equal(t, float64(33), percentChange(400, 300), "rounded to nearest integer")
}

func TestAverageOrderValue(t *testing.T) {
	assert.Equal(t, float64(0), averageOrderValue(500, 0))
	assert.Equal(t, 33.33, averageOrderValue(100, 3))
}

func TestSalesTrendDailyBuckets(t *testing.T) {
	q := models.AnalyticsQuery{
		Granularity: models.GranularityDay,
		From:        day(2024, time.January, 1),
		To:          endOfDay(2024, time.January, 31),
	}
	orders := []models.Order{
		order("order_1", day(2024, time.January, 5).Add(10*time.Hour), 10000, "cus_1"),
	}

	points := buildSalesTrend(orders, q)
	require.Len(t, points, 31)
	assert.Equal(t, "2024-01-01", points[0].Label)
	assert.Equal(t, "2024-01-31", points[30].Label)

	for i, p := range points {
		if p.Label == "2024-01-05" {
			assert.Equal(t, float64(100), p.Revenue)
			assert.Equal(t, 1, p.Orders)
			continue
		}
		assert.Zero(t, p.Revenue, "bucket %d (%s) should be zero-filled", i, p.Label)
		assert.Zero(t, p.Orders)
	}
}

func TestSalesTrendWeeklyBucketsAlignToMonday(t *testing.T) {
	// 2024-01-03 is a Wednesday; its week bucket starts Monday 2024-01-01.
	q := models.AnalyticsQuery{
		Granularity: models.GranularityWeek,
		From:        day(2024, time.January, 3),
		To:          endOfDay(2024, time.January, 14),
	}
	orders := []models.Order{
		order("order_1", day(2024, time.January, 4), 2500, "cus_1"),
		order("order_2", day(2024, time.January, 10), 7500, "cus_2"),
	}

	points := buildSalesTrend(orders, q)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-01", points[0].Label)
	assert.Equal(t, float64(25), points[0].Revenue)
	assert.Equal(t, "2024-01-08", points[1].Label)
	assert.Equal(t, float64(75), points[1].Revenue)
}

func TestSalesTrendMonthlyBuckets(t *testing.T) {
	q := models.AnalyticsQuery{
		Granularity: models.GranularityMonth,
		From:        day(2024, time.January, 15),
		To:          endOfDay(2024, time.March, 10),
	}

	points := buildSalesTrend(nil, q)
	require.Len(t, points, 3)
	assert.Equal(t, "Jan 2024", points[0].Label)
	assert.Equal(t, "Feb 2024", points[1].Label)
	assert.Equal(t, "Mar 2024", points[2].Label)
}

func TestSalesTrendEmptyRange(t *testing.T) {
	at := day(2024, time.June, 1)

	same := buildSalesTrend(nil, models.AnalyticsQuery{Granularity: models.GranularityDay, From: at, To: at})
	assert.Empty(t, same, "from == to yields no buckets")

	inverted := buildSalesTrend(nil, models.AnalyticsQuery{Granularity: models.GranularityDay, From: at, To: at.AddDate(0, 0, -5)})
	assert.Empty(t, inverted, "inverted range yields no buckets")
}

func TestSalesTrendIgnoresOutOfRangeOrders(t *testing.T) {
	q := models.AnalyticsQuery{
		Granularity: models.GranularityDay,
		From:        day(2024, time.January, 10),
		To:          endOfDay(2024, time.January, 12),
	}
	orders := []models.Order{
		order("order_before", day(2024, time.January, 9), 99999, "cus_1"),
		order("order_after", day(2024, time.February, 1), 99999, "cus_1"),
		order("order_in", day(2024, time.January, 11), 1000, "cus_1"),
	}

	points := buildSalesTrend(orders, q)
	require.Len(t, points, 3)

	var total float64
	for _, p := range points {
		total += p.Revenue
	}
	assert.Equal(t, float64(10), total)
}

func TestRankTopProductsGroupsByTitle(t *testing.T) {
	orders := []models.Order{
		order("order_1", day(2024, time.January, 5), 2000, "cus_1",
			models.OrderItem{Title: "Cigar A", Quantity: 2, UnitPrice: 1000, Revenue: 2000, ProductID: "prod_1"}),
		order("order_2", day(2024, time.January, 6), 3000, "cus_2",
			models.OrderItem{Title: "Cigar A", Quantity: 3, UnitPrice: 1000, Revenue: 3000, ProductID: "prod_1"}),
	}

	ranked := rankTopProducts(orders)
	require.Len(t, ranked, 1)
	assert.Equal(t, "cigar-a", ranked[0].ID)
	assert.Equal(t, "Cigar A", ranked[0].Title)
	assert.Equal(t, 5, ranked[0].TotalQuantity)
	assert.Equal(t, float64(50), ranked[0].TotalRevenue)
}

func TestRankTopProductsLimitAndOrder(t *testing.T) {
	items := make([]models.OrderItem, 0, 15)
	for i := 0; i < 15; i++ {
		items = append(items, models.OrderItem{
			Title:     string(rune('A' + i)),
			Quantity:  1,
			UnitPrice: int64((i + 1) * 100),
			Revenue:   int64((i + 1) * 100),
		})
	}
	orders := []models.Order{order("order_1", day(2024, time.January, 5), 0, "cus_1", items...)}

	ranked := rankTopProducts(orders)
	require.Len(t, ranked, topProductsLimit)
	for i := 1; i < len(ranked); i++ {
		assert.Greater(t, ranked[i-1].TotalRevenue, ranked[i].TotalRevenue)
	}
	assert.Equal(t, "O", ranked[0].Title, "highest revenue item first")
}

func TestRankTopProductsPrefersLineItemTotal(t *testing.T) {
	// when the server reports a line total, it wins over unit_price * qty
	raw := rawOrder{
		ID:        "order_1",
		CreatedAt: day(2024, time.January, 5),
		Items: []rawLineItem{
			{Title: "Discounted", Quantity: 2, UnitPrice: ptrInt64(1000), Total: ptrInt64(1500)},
		},
	}
	orders := []models.Order{normalizeOrder(raw)}

	ranked := rankTopProducts(orders)
	require.Len(t, ranked, 1)
	assert.Equal(t, float64(15), ranked[0].TotalRevenue)
}

func TestRankTopProductsZeroTotalMeansFreeLine(t *testing.T) {
	// a server-sent zero total marks a fully discounted line, which must not
	// fall back to unit_price * qty
	raw := rawOrder{
		ID:        "order_1",
		CreatedAt: day(2024, time.January, 5),
		Items: []rawLineItem{
			{Title: "Comped", Quantity: 2, UnitPrice: ptrInt64(1000), Total: ptrInt64(0)},
		},
	}
	orders := []models.Order{normalizeOrder(raw)}

	ranked := rankTopProducts(orders)
	require.Len(t, ranked, 1)
	assert.Equal(t, 2, ranked[0].TotalQuantity)
	assert.Zero(t, ranked[0].TotalRevenue)
}

func TestSegmentCustomers(t *testing.T) {
	from := day(2024, time.March, 1)
	customers := []models.Customer{
		{ID: "cus_old", CreatedAt: day(2023, time.June, 1)},
		{ID: "cus_new_1", CreatedAt: day(2024, time.March, 2)},
		{ID: "cus_new_2", CreatedAt: from}, // created exactly at period start counts as new
	}
	ordersInRange := []models.Order{
		order("order_1", day(2024, time.March, 3), 10000, "cus_old"),
		order("order_2", day(2024, time.March, 4), 5000, "cus_old"),
		order("order_3", day(2024, time.March, 5), 5000, "cus_new_1"),
		order("order_guest", day(2024, time.March, 6), 9999, ""), // guest checkout, not attributed
	}

	seg := segmentCustomers(customers, ordersInRange, from)
	assert.Equal(t, 2, seg.NewCustomers)
	assert.Equal(t, 1, seg.ReturningCustomers)
	assert.Equal(t, 3, seg.TotalCustomers)
	assert.Equal(t, seg.TotalCustomers, seg.NewCustomers+seg.ReturningCustomers)
	// 200.00 attributed over 2 distinct ordering customers
	assert.Equal(t, float64(100), seg.AverageLifetimeValue)
}

func TestSegmentCustomersNoOrderingCustomers(t *testing.T) {
	seg := segmentCustomers([]models.Customer{{ID: "cus_1", CreatedAt: day(2023, time.June, 1)}}, nil, day(2024, time.March, 1))
	assert.Equal(t, float64(0), seg.AverageLifetimeValue)
}

func TestBreakdownRevenueFallbacks(t *testing.T) {
	products := []models.Product{
		{ID: "prod_1", Title: "Robusto", BrandName: "Acme", Categories: []models.ProductCategory{{ID: "cat_1", Name: "Cigars"}}},
		{ID: "prod_2", Title: "Plain", Categories: []models.ProductCategory{}},
	}
	orders := []models.Order{
		order("order_1", day(2024, time.January, 5), 0, "cus_1",
			models.OrderItem{Title: "Robusto", Quantity: 1, UnitPrice: 4000, Revenue: 4000, ProductID: "prod_1"},
			models.OrderItem{Title: "Plain", Quantity: 1, UnitPrice: 1000, Revenue: 1000, ProductID: "prod_2"},
			models.OrderItem{Title: "Ghost", Quantity: 1, UnitPrice: 500, Revenue: 500, ProductID: "prod_gone"},
			models.OrderItem{Title: "Legacy", Quantity: 1, UnitPrice: 500, Revenue: 500}),
	}

	byBrand := breakdownRevenue(orders, brandLookup(products), labelUnbranded)
	require.Len(t, byBrand, 2)
	assert.Equal(t, models.RevenueBreakdownItem{Name: "Acme", Revenue: 40}, byBrand[0])
	// prod_2 has no brand, prod_gone is unknown, Legacy has no product_id
	assert.Equal(t, models.RevenueBreakdownItem{Name: labelUnbranded, Revenue: 20}, byBrand[1])

	byCategory := breakdownRevenue(orders, categoryLookup(products), labelUncategorized)
	require.Len(t, byCategory, 2)
	assert.Equal(t, models.RevenueBreakdownItem{Name: "Cigars", Revenue: 40}, byCategory[0])
	assert.Equal(t, models.RevenueBreakdownItem{Name: labelUncategorized, Revenue: 20}, byCategory[1])
}

func TestGetAnalyticsKPIsAndComparison(t *testing.T) {
	api := &fakeCommerceAPI{
		orders: []models.Order{
			// previous period
			order("order_prev", day(2024, time.January, 15), 5000, "cus_1"),
			// active period
			order("order_cur", day(2024, time.February, 10), 10000, "cus_1",
				models.OrderItem{Title: "Cigar A", Quantity: 1, UnitPrice: 10000, Revenue: 10000, ProductID: "prod_1"}),
			// far outside both periods
			order("order_ancient", day(2022, time.May, 1), 99999, "cus_1"),
		},
		products: []models.Product{
			{ID: "prod_1", Title: "Cigar A", BrandName: "Acme", Categories: []models.ProductCategory{{ID: "cat_1", Name: "Cigars"}}},
		},
		customers: []models.Customer{
			{ID: "cus_1", CreatedAt: day(2023, time.June, 1)},
		},
	}
	svc := newTestService(api)

	q := models.AnalyticsQuery{
		Granularity: models.GranularityDay,
		From:        day(2024, time.February, 1),
		To:          endOfDay(2024, time.February, 29),
	}
	data, err := svc.GetAnalytics(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, float64(100), data.TotalRevenue)
	assert.Equal(t, 1, data.TotalOrders)
	assert.Equal(t, float64(100), data.RevenueChange, "100 vs 50 in the preceding period")
	assert.Equal(t, float64(0), data.OrdersChange, "1 order in both periods")
	assert.Equal(t, float64(100), data.AverageOrderValue)
	assert.Equal(t, float64(100), data.AOVChange)

	require.Len(t, data.SalesTrend, 29)
	var trendTotal float64
	for _, p := range data.SalesTrend {
		trendTotal += p.Revenue
	}
	assert.Equal(t, data.TotalRevenue, round2(trendTotal), "trend buckets sum to total revenue")

	require.Len(t, data.TopProducts, 1)
	assert.Equal(t, "Cigar A", data.TopProducts[0].Title)

	assert.Equal(t, 1, data.CustomerSegments.ReturningCustomers)
	assert.Equal(t, 0, data.CustomerSegments.NewCustomers)

	require.Len(t, data.RevenueByBrand, 1)
	assert.Equal(t, "Acme", data.RevenueByBrand[0].Name)
	require.Len(t, data.RevenueByCategory, 1)
	assert.Equal(t, "Cigars", data.RevenueByCategory[0].Name)
}

func TestGetAnalyticsBoundaryOrderCountedOnce(t *testing.T) {
	from := day(2024, time.February, 1)
	api := &fakeCommerceAPI{
		orders: []models.Order{
			// created exactly at period-start midnight
			order("order_boundary", from, 10000, "cus_1"),
		},
		customers: []models.Customer{{ID: "cus_1", CreatedAt: day(2023, time.June, 1)}},
	}
	svc := newTestService(api)

	q := models.AnalyticsQuery{
		Granularity: models.GranularityDay,
		From:        from,
		To:          endOfDay(2024, time.February, 29),
	}
	data, err := svc.GetAnalytics(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, data.TotalOrders)
	assert.Equal(t, float64(100), data.TotalRevenue)
	// the comparison window must not also claim the boundary order, so the
	// previous period is empty and the zero-previous convention applies
	assert.Equal(t, float64(100), data.RevenueChange)
	assert.Equal(t, float64(100), data.OrdersChange)
}

func TestGetAnalyticsNoOrders(t *testing.T) {
	api := &fakeCommerceAPI{
		customers: []models.Customer{{ID: "cus_1", CreatedAt: day(2024, time.January, 2)}},
	}
	svc := newTestService(api)

	q := models.AnalyticsQuery{
		Granularity: models.GranularityDay,
		From:        day(2024, time.January, 1),
		To:          endOfDay(2024, time.January, 7),
	}
	data, err := svc.GetAnalytics(context.Background(), q)
	require.NoError(t, err)

	assert.Zero(t, data.TotalRevenue)
	assert.Zero(t, data.TotalOrders)
	assert.Zero(t, data.AverageOrderValue)
	assert.Zero(t, data.RevenueChange)
	assert.Len(t, data.SalesTrend, 7)
	assert.Empty(t, data.TopProducts)
	assert.Equal(t, 1, data.CustomerSegments.NewCustomers)
}

func TestGetAnalyticsPropagatesFetchError(t *testing.T) {
	api := &fakeCommerceAPI{err: context.DeadlineExceeded}
	svc := newTestService(api)

	q := models.AnalyticsQuery{
		Granularity: models.GranularityDay,
		From:        day(2024, time.January, 1),
		To:          endOfDay(2024, time.January, 7),
	}
	_, err := svc.GetAnalytics(context.Background(), q)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
