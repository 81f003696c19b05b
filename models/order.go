package models

import "time"

// Order is the normalized projection of an upstream commerce API order.
// All monetary fields are integer minor units (cents) exactly as the API
// reports them; conversion to major units happens once, inside aggregation.
type Order struct {
	ID           string      `json:"id"`
	CreatedAt    time.Time   `json:"created_at"`
	Total        int64       `json:"total"`
	CurrencyCode string      `json:"currency_code"`
	CustomerID   string      `json:"customer_id"` // empty when the order carries no customer reference
	Items        []OrderItem `json:"items"`
}

// OrderItem is a single line item. ProductID is empty when the upstream API
// did not populate it; aggregation treats that as an unmatchable item rather
// than an error.
//
// Revenue is resolved during normalization: the server-computed line total
// when the API sent one (a zero total means a fully discounted line and
// stands), otherwise unit_price × quantity. Aggregation never re-derives it.
type OrderItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // minor units
	Revenue   int64  `json:"revenue"`    // minor units, resolved at fetch time
	ProductID string `json:"product_id"`
}
