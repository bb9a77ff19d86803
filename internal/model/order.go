package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisplayDateFormat renders order dates the way the admin table shows them.
const DisplayDateFormat = "02/01/2006"

// OrderItem is a line item within an order. UnitPrice is the historical
// price at purchase time, not the live catalog price; it never changes
// once the order exists.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"priceAtPurchase"`
}

// OrderSummary is one row of the order list. It is created by the list
// fetcher on each page load, replaced wholesale on refetch, and patched in
// place after a successful save.
type OrderSummary struct {
	ID              string
	CustomerID      string
	CustomerName    string
	PlacedAt        time.Time
	Date            string // locale display string derived from PlacedAt
	Total           decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	BillingAddress  string
	Items           []OrderItem
	CouponCode      *string
	DiscountAmount  decimal.Decimal
	ShippingCost    *decimal.Decimal
	TrackingNumber  *string
}

// OrderPage is one page of the order collection plus the total row count
// the server reports for the current query.
type OrderPage struct {
	Orders        []OrderSummary
	TotalElements int
}

// ItemQuantity is the reduced item form sent on update. The server is the
// source of truth for pricing, so no price or name travels with it.
type ItemQuantity struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderUpdate is the minimal payload for an order write.
type OrderUpdate struct {
	Status          string         `json:"status"`
	ShippingAddress string         `json:"shippingAddress"`
	Items           []ItemQuantity `json:"items"`
}
