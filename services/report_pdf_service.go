package services

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
	"github.com/shitiandmw/e-commerce-sub001/models"
)

var currencySymbols = map[string]string{
	"usd": "$",
	"eur": "€",
	"gbp": "£",
}

// FormatAmount renders a major-unit amount in the store currency. Unknown
// currency codes fall back to a plain "amount CODE" string instead of failing.
func FormatAmount(amount float64, currencyCode string) string {
	if symbol, ok := currencySymbols[strings.ToLower(currencyCode)]; ok {
		return fmt.Sprintf("%s%.2f", symbol, amount)
	}
	if currencyCode == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(currencyCode))
}

// GenerateAnalyticsReportPDF renders the aggregate as a downloadable report.
func GenerateAnalyticsReportPDF(data *models.AnalyticsData, q models.AnalyticsQuery, currencyCode string) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 15, 15)

	grayText := color.Color{Red: 98, Green: 98, Blue: 98}

	// Header
	m.Row(14, func() {
		m.Col(8, func() {
			m.Text("ANALYTICS REPORT", props.Text{
				Size:  16,
				Style: consts.Bold,
			})
		})
		m.Col(4, func() {
			m.Text(fmt.Sprintf("%s — %s", q.From.Format("Jan 02, 2006"), q.To.Format("Jan 02, 2006")), props.Text{
				Top:   2,
				Size:  9,
				Align: consts.Right,
				Color: grayText,
			})
		})
	})
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Granularity: %s", q.Granularity), props.Text{
				Size:  9,
				Color: grayText,
			})
		})
	})

	m.Line(4)

	// KPI summary
	kpiRows := [][2]string{
		{"Total Revenue", fmt.Sprintf("%s (%+.0f%%)", FormatAmount(data.TotalRevenue, currencyCode), data.RevenueChange)},
		{"Total Orders", fmt.Sprintf("%d (%+.0f%%)", data.TotalOrders, data.OrdersChange)},
		{"Average Order Value", fmt.Sprintf("%s (%+.0f%%)", FormatAmount(data.AverageOrderValue, currencyCode), data.AOVChange)},
		{"New Customers", fmt.Sprintf("%d", data.CustomerSegments.NewCustomers)},
		{"Returning Customers", fmt.Sprintf("%d", data.CustomerSegments.ReturningCustomers)},
		{"Avg Lifetime Value", FormatAmount(data.CustomerSegments.AverageLifetimeValue, currencyCode)},
	}
	for _, row := range kpiRows {
		label, value := row[0], row[1]
		m.Row(7, func() {
			m.Col(6, func() {
				m.Text(label, props.Text{Size: 10})
			})
			m.Col(6, func() {
				m.Text(value, props.Text{
					Size:  10,
					Style: consts.Bold,
					Align: consts.Right,
				})
			})
		})
	}

	m.Line(4)

	// Top products table
	m.Row(9, func() {
		m.Col(12, func() {
			m.Text("TOP PRODUCTS", props.Text{
				Size:  11,
				Style: consts.Bold,
			})
		})
	})
	m.Row(6, func() {
		m.Col(7, func() {
			m.Text("Product", props.Text{Size: 9, Style: consts.Bold})
		})
		m.Col(2, func() {
			m.Text("Qty", props.Text{Size: 9, Style: consts.Bold, Align: consts.Right})
		})
		m.Col(3, func() {
			m.Text("Revenue", props.Text{Size: 9, Style: consts.Bold, Align: consts.Right})
		})
	})
	for _, tp := range data.TopProducts {
		product := tp
		m.Row(6, func() {
			m.Col(7, func() {
				m.Text(product.Title, props.Text{Size: 9})
			})
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", product.TotalQuantity), props.Text{Size: 9, Align: consts.Right})
			})
			m.Col(3, func() {
				m.Text(FormatAmount(product.TotalRevenue, currencyCode), props.Text{Size: 9, Align: consts.Right})
			})
		})
	}

	m.Line(4)

	// Revenue breakdowns, side by side
	m.Row(9, func() {
		m.Col(6, func() {
			m.Text("REVENUE BY BRAND", props.Text{Size: 11, Style: consts.Bold})
		})
		m.Col(6, func() {
			m.Text("REVENUE BY CATEGORY", props.Text{Size: 11, Style: consts.Bold})
		})
	})
	maxRows := len(data.RevenueByBrand)
	if len(data.RevenueByCategory) > maxRows {
		maxRows = len(data.RevenueByCategory)
	}
	for i := 0; i < maxRows; i++ {
		row := i
		m.Row(6, func() {
			if row < len(data.RevenueByBrand) {
				item := data.RevenueByBrand[row]
				m.Col(4, func() {
					m.Text(item.Name, props.Text{Size: 9})
				})
				m.Col(2, func() {
					m.Text(FormatAmount(item.Revenue, currencyCode), props.Text{Size: 9, Align: consts.Right})
				})
			} else {
				m.ColSpace(6)
			}
			if row < len(data.RevenueByCategory) {
				item := data.RevenueByCategory[row]
				m.Col(4, func() {
					m.Text(item.Name, props.Text{Size: 9})
				})
				m.Col(2, func() {
					m.Text(FormatAmount(item.Revenue, currencyCode), props.Text{Size: 9, Align: consts.Right})
				})
			} else {
				m.ColSpace(6)
			}
		})
	}

	buf, err := m.Output()
	if err != nil {
		log.Printf("[report.pdf] failed to render: %v", err)
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return &buf, nil
}
