package api

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"orderdesk/internal/model"
)

// apiOrder is the wire shape of an order as the backend returns it.
type apiOrder struct {
	ID                 string         `json:"id"`
	CustomerID         string         `json:"customerId"`
	CustomerName       string         `json:"customerName"`
	OrderDate          string         `json:"orderDate"`
	TotalAmount        float64        `json:"totalAmount"`
	Status             string         `json:"status"`
	ShippingAddress    string         `json:"shippingAddress"`
	BillingAddress     string         `json:"billingAddress"`
	Items              []apiOrderItem `json:"items"`
	CouponCode         *string        `json:"couponCode"`
	DiscountAmount     float64        `json:"discountAmount"`
	ShippingCost       *float64       `json:"shippingCost"`
	ShippingMethodName *string        `json:"shippingMethodName"`
	TrackingNumber     *string        `json:"trackingNumber"`
	FinalAmount        float64        `json:"finalAmount"`
}

// apiOrderItem is the wire shape of a line item.
type apiOrderItem struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// pagedOrders is the wire shape of a paginated list response.
type pagedOrders struct {
	Content       []apiOrder `json:"content"`
	TotalElements int        `json:"totalElements"`
}

// toOrderSummary maps a wire order into the display/edit model. The total
// is the server-computed final amount and is never recomputed here; the
// status goes through the validated wire mapping so unknown values fail the
// fetch instead of passing through silently.
func toOrderSummary(o apiOrder) (model.OrderSummary, error) {
	status, err := model.ParseWireStatus(o.Status)
	if err != nil {
		return model.OrderSummary{}, fmt.Errorf("order %s: %w", o.ID, err)
	}

	placedAt, err := time.Parse(time.RFC3339, o.OrderDate)
	if err != nil {
		return model.OrderSummary{}, fmt.Errorf("order %s: parse order date %q: %w", o.ID, o.OrderDate, err)
	}

	items := lo.Map(o.Items, func(item apiOrderItem, _ int) model.OrderItem {
		return model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   decimal.NewFromFloat(item.PriceAtPurchase),
		}
	})

	var shippingCost *decimal.Decimal
	if o.ShippingCost != nil {
		cost := decimal.NewFromFloat(*o.ShippingCost)
		shippingCost = &cost
	}

	return model.OrderSummary{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		CustomerName:    o.CustomerName,
		PlacedAt:        placedAt,
		Date:            placedAt.Format(model.DisplayDateFormat),
		Total:           decimal.NewFromFloat(o.FinalAmount),
		Status:          status,
		ShippingAddress: o.ShippingAddress,
		BillingAddress:  o.BillingAddress,
		Items:           items,
		CouponCode:      o.CouponCode,
		DiscountAmount:  decimal.NewFromFloat(o.DiscountAmount),
		ShippingCost:    shippingCost,
		TrackingNumber:  o.TrackingNumber,
	}, nil
}
