package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	analytics_cache "github.com/shitiandmw/e-commerce-sub001/cache"
	"github.com/shitiandmw/e-commerce-sub001/models"
	"golang.org/x/sync/errgroup"
)

const (
	topProductsLimit = 10
	breakdownLimit   = 10

	labelUnbranded     = "Unbranded"
	labelUncategorized = "Uncategorized"
)

// CommerceAPI is the slice of the commerce client the aggregator needs.
type CommerceAPI interface {
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	ListAllProducts(ctx context.Context) ([]models.Product, error)
	ListAllCustomers(ctx context.Context) ([]models.Customer, error)
}

// AnalyticsService computes the dashboard aggregate from the commerce API.
// Results are cached per query key; all data is immutable after fetch, so no
// locking beyond the cache's own is needed.
type AnalyticsService struct {
	api   CommerceAPI
	cache *analytics_cache.Cache
}

func NewAnalyticsService(api CommerceAPI, cache *analytics_cache.Cache) *AnalyticsService {
	return &AnalyticsService{api: api, cache: cache}
}

// GetAnalytics returns the aggregate for the query, serving from cache within
// the TTL. Concurrent requests for the same key share one computation.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, q models.AnalyticsQuery) (*models.AnalyticsData, error) {
	return s.cache.GetOrCompute(analytics_cache.Key(q), func() (*models.AnalyticsData, error) {
		return s.compute(ctx, q)
	})
}

func (s *AnalyticsService) compute(ctx context.Context, q models.AnalyticsQuery) (*models.AnalyticsData, error) {
	start := time.Now()
	log.Printf("[analytics.compute] start granularity=%s from=%s to=%s",
		q.Granularity, q.From.Format("2006-01-02"), q.To.Format("2006-01-02"))

	// ================================
	// Fan-out: orders, products and customers fetch concurrently.
	// All three must succeed; the first failure rejects the whole computation.
	// ================================
	var (
		orders    []models.Order
		products  []models.Product
		customers []models.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.api.ListAllOrders(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = s.api.ListAllProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = s.api.ListAllCustomers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics fetch: %w", err)
	}

	inRange := filterOrdersByRange(orders, q.From, q.To)

	data := &models.AnalyticsData{
		SalesTrend:        buildSalesTrend(orders, q),
		TopProducts:       rankTopProducts(inRange),
		CustomerSegments:  segmentCustomers(customers, inRange, q.From),
		RevenueByBrand:    breakdownRevenue(inRange, brandLookup(products), labelUnbranded),
		RevenueByCategory: breakdownRevenue(inRange, categoryLookup(products), labelUncategorized),
	}

	// ================================
	// KPI summary + comparison against the preceding period of equal length
	// ================================
	currentRevenue, currentOrders := summarizeOrders(inRange)

	// The comparison window ends just before the active period starts, so an
	// order created exactly at period-start midnight counts once, not twice.
	period := q.To.Sub(q.From)
	prevFrom := q.From.Add(-period)
	previous := filterOrdersByRange(orders, prevFrom, q.From.Add(-time.Nanosecond))
	previousRevenue, previousOrders := summarizeOrders(previous)

	data.TotalRevenue = round2(currentRevenue)
	data.TotalOrders = currentOrders
	data.RevenueChange = percentChange(currentRevenue, previousRevenue)
	data.OrdersChange = percentChange(float64(currentOrders), float64(previousOrders))

	currentAOV := averageOrderValue(currentRevenue, currentOrders)
	previousAOV := averageOrderValue(previousRevenue, previousOrders)
	data.AverageOrderValue = currentAOV
	data.AOVChange = percentChange(currentAOV, previousAOV)

	log.Printf("[analytics.compute] done orders=%d products=%d customers=%d revenue=%.2f elapsed=%v",
		len(orders), len(products), len(customers), data.TotalRevenue, time.Since(start))
	return data, nil
}

// ---- helpers -----------------------------------------------------------------

// toMajor converts API minor units (cents) to major units. This is the single
// place the division by 100 happens on any aggregation path.
func toMajor(minor int64) float64 {
	return float64(minor) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentChange reports the period-over-period delta. A zero previous value
// yields 100 when the current is positive and 0 otherwise; this sidesteps
// division by zero by convention, not by mathematical rigor.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return math.Round(((current - previous) / previous) * 100)
}

func averageOrderValue(revenue float64, orders int) float64 {
	if orders == 0 {
		return 0
	}
	return round2(revenue / float64(orders))
}

// filterOrdersByRange keeps orders whose created_at lies within [from, to].
func filterOrdersByRange(orders []models.Order, from, to time.Time) []models.Order {
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.CreatedAt.Before(from) || o.CreatedAt.After(to) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

func summarizeOrders(orders []models.Order) (revenue float64, count int) {
	for _, o := range orders {
		revenue += toMajor(o.Total)
	}
	return revenue, len(orders)
}

// ---- sales trend bucketing ----------------------------------------------------

// bucketKey maps a timestamp to its bucket label. The same rule keys both the
// seeded buckets and each order, so they always agree.
func bucketKey(t time.Time, granularity string) string {
	switch granularity {
	case models.GranularityWeek:
		// align to the ISO Monday start of the week
		monday := t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
		return monday.Format("2006-01-02")
	case models.GranularityMonth:
		return t.Format("Jan 2006")
	default:
		return t.Format("2006-01-02")
	}
}

// seedBucketKeys walks the range forward and emits one key per bucket,
// chronologically. An empty or inverted range yields no buckets.
func seedBucketKeys(q models.AnalyticsQuery) []string {
	if !q.From.Before(q.To) {
		return nil
	}

	cursor := q.From
	switch q.Granularity {
	case models.GranularityWeek:
		cursor = cursor.AddDate(0, 0, -((int(cursor.Weekday()) + 6) % 7))
	case models.GranularityMonth:
		cursor = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
	}

	var keys []string
	for cursor.Before(q.To) {
		keys = append(keys, bucketKey(cursor, q.Granularity))
		switch q.Granularity {
		case models.GranularityWeek:
			cursor = cursor.AddDate(0, 0, 7)
		case models.GranularityMonth:
			cursor = cursor.AddDate(0, 1, 0)
		default:
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return keys
}

// buildSalesTrend seeds every bucket in the range to zero, then accumulates
// in-range orders into their buckets. Output preserves bucket insertion order;
// nothing is sorted afterwards.
func buildSalesTrend(orders []models.Order, q models.AnalyticsQuery) []models.SalesTrendPoint {
	keys := seedBucketKeys(q)
	points := make([]models.SalesTrendPoint, len(keys))
	index := make(map[string]int, len(keys))
	for i, key := range keys {
		points[i] = models.SalesTrendPoint{Label: key}
		index[key] = i
	}
	if len(points) == 0 {
		return points
	}

	for _, o := range orders {
		if o.CreatedAt.Before(q.From) || o.CreatedAt.After(q.To) {
			continue
		}
		i, ok := index[bucketKey(o.CreatedAt, q.Granularity)]
		if !ok {
			continue
		}
		points[i].Revenue += toMajor(o.Total)
		points[i].Orders++
	}

	for i := range points {
		points[i].Revenue = round2(points[i].Revenue)
	}
	return points
}

// ---- top products --------------------------------------------------------------

// titleID derives a display id from a product title. It is not a stable
// identifier: two products sharing a title merge into one entry.
func titleID(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

// rankTopProducts groups line items by product title, summing quantity and
// revenue, and returns the top entries by revenue descending.
func rankTopProducts(orders []models.Order) []models.TopProduct {
	byTitle := make(map[string]*models.TopProduct)
	for _, o := range orders {
		for _, item := range o.Items {
			tp, ok := byTitle[item.Title]
			if !ok {
				tp = &models.TopProduct{ID: titleID(item.Title), Title: item.Title}
				byTitle[item.Title] = tp
			}
			tp.TotalQuantity += item.Quantity
			tp.TotalRevenue += toMajor(item.Revenue)
		}
	}

	ranked := make([]models.TopProduct, 0, len(byTitle))
	for _, tp := range byTitle {
		tp.TotalRevenue = round2(tp.TotalRevenue)
		ranked = append(ranked, *tp)
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].TotalRevenue > ranked[j].TotalRevenue })
	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	return ranked
}

// ---- customer segmentation -----------------------------------------------------

// segmentCustomers classifies customers created on or after the period start
// as new (no upper bound check) and everyone else as returning. Average
// lifetime value covers only customers who placed an in-range order.
func segmentCustomers(customers []models.Customer, ordersInRange []models.Order, from time.Time) models.CustomerSegments {
	seg := models.CustomerSegments{TotalCustomers: len(customers)}
	for _, c := range customers {
		if !c.CreatedAt.Before(from) {
			seg.NewCustomers++
		} else {
			seg.ReturningCustomers++
		}
	}

	var attributedRevenue float64
	ordering := make(map[string]struct{})
	for _, o := range ordersInRange {
		if o.CustomerID == "" {
			continue
		}
		attributedRevenue += toMajor(o.Total)
		ordering[o.CustomerID] = struct{}{}
	}
	if len(ordering) > 0 {
		seg.AverageLifetimeValue = round2(attributedRevenue / float64(len(ordering)))
	}
	return seg
}

// ---- revenue breakdowns --------------------------------------------------------

func brandLookup(products []models.Product) map[string]string {
	lookup := make(map[string]string, len(products))
	for _, p := range products {
		if p.BrandName != "" {
			lookup[p.ID] = p.BrandName
		}
	}
	return lookup
}

func categoryLookup(products []models.Product) map[string]string {
	lookup := make(map[string]string, len(products))
	for _, p := range products {
		lookup[p.ID] = p.FirstCategoryName(labelUncategorized)
	}
	return lookup
}

// breakdownRevenue attributes each line item's revenue to the name its
// product_id resolves to; items with no product_id or an id absent from the
// lookup fall into the fallback bucket. Top entries by revenue descending.
func breakdownRevenue(orders []models.Order, lookup map[string]string, fallback string) []models.RevenueBreakdownItem {
	revenue := make(map[string]float64)
	for _, o := range orders {
		for _, item := range o.Items {
			name := fallback
			if item.ProductID != "" {
				if matched, ok := lookup[item.ProductID]; ok {
					name = matched
				}
			}
			revenue[name] += toMajor(item.Revenue)
		}
	}

	items := make([]models.RevenueBreakdownItem, 0, len(revenue))
	for name, amount := range revenue {
		items = append(items, models.RevenueBreakdownItem{Name: name, Revenue: round2(amount)})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Revenue > items[j].Revenue })
	if len(items) > breakdownLimit {
		items = items[:breakdownLimit]
	}
	return items
}
