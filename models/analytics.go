package models

import "time"

// Granularity values accepted by the sales trend bucketing.
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

// AnalyticsQuery identifies one analytics computation. From/To bound the
// active period; To is inclusive (normalized to end-of-day at the API edge).
type AnalyticsQuery struct {
	Granularity string    `json:"granularity"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
}

// AnalyticsOverview is the KPI slice of the aggregate served by the
// dashboard's overview cards.
type AnalyticsOverview struct {
	TotalRevenue      float64 `json:"total_revenue"`
	RevenueChange     float64 `json:"revenue_change"`
	TotalOrders       int     `json:"total_orders"`
	OrdersChange      float64 `json:"orders_change"`
	AverageOrderValue float64 `json:"average_order_value"`
	AOVChange         float64 `json:"aov_change"`
}

// AnalyticsData is the full aggregate computed for one query.
type AnalyticsData struct {
	TotalRevenue      float64 `json:"total_revenue"`       // major units, active period
	RevenueChange     float64 `json:"revenue_change"`      // % vs preceding period of equal length
	TotalOrders       int     `json:"total_orders"`        // orders in active period
	OrdersChange      float64 `json:"orders_change"`       // % vs preceding period
	AverageOrderValue float64 `json:"average_order_value"` // revenue / orders, 0 when no orders
	AOVChange         float64 `json:"aov_change"`          // % vs preceding period

	SalesTrend        []SalesTrendPoint      `json:"sales_trend"`
	TopProducts       []TopProduct           `json:"top_products"`
	CustomerSegments  CustomerSegments       `json:"customer_segments"`
	RevenueByBrand    []RevenueBreakdownItem `json:"revenue_by_brand"`
	RevenueByCategory []RevenueBreakdownItem `json:"revenue_by_category"`
}

// SalesTrendPoint is one time bucket of the sales trend. Points are emitted
// in chronological bucket order, zero-filled buckets included.
type SalesTrendPoint struct {
	Label   string  `json:"label"`   // bucket key (day/week start date or month label)
	Revenue float64 `json:"revenue"` // major units, rounded to 2 decimals
	Orders  int     `json:"orders"`  // order count in bucket
}

// TopProduct aggregates order line items sharing a product title. ID is
// derived from the title and is not a stable product identifier.
type TopProduct struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TotalQuantity int     `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"` // major units
}

// CustomerSegments splits the customer base for the active period.
type CustomerSegments struct {
	NewCustomers         int     `json:"new_customers"`          // created_at within the active period
	ReturningCustomers   int     `json:"returning_customers"`    // everyone else
	TotalCustomers       int     `json:"total_customers"`        // new + returning, always
	AverageLifetimeValue float64 `json:"average_lifetime_value"` // per ordering customer, 2 decimals
}

// RevenueBreakdownItem attributes period revenue to a brand or category name.
type RevenueBreakdownItem struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"` // major units
}
