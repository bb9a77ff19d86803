package model

import "github.com/shopspring/decimal"

// LineSubtotal returns quantity × unit price for a single item.
func LineSubtotal(item OrderItem) decimal.Decimal {
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// ItemsSubtotal returns the sum of line subtotals across all items.
func ItemsSubtotal(items []OrderItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(LineSubtotal(item))
	}
	return subtotal
}

// GrandTotal returns the items subtotal plus the shipping cost.
// A nil shipping cost counts as zero.
func GrandTotal(items []OrderItem, shippingCost *decimal.Decimal) decimal.Decimal {
	total := ItemsSubtotal(items)
	if shippingCost != nil {
		total = total.Add(*shippingCost)
	}
	return total
}
