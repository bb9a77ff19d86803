package model

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineSubtotal(t *testing.T) {
	item := OrderItem{ProductID: "P001", Quantity: 3, UnitPrice: dec("19.99")}

	assert.True(t, dec("59.97").Equal(LineSubtotal(item)))
}

func TestLineSubtotal_ZeroQuantity(t *testing.T) {
	item := OrderItem{ProductID: "P001", Quantity: 0, UnitPrice: dec("19.99")}

	assert.True(t, decimal.Zero.Equal(LineSubtotal(item)))
}

func TestItemsSubtotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "P001", Quantity: 2, UnitPrice: dec("10.00")},
		{ProductID: "P002", Quantity: 1, UnitPrice: dec("0.10")},
		{ProductID: "P003", Quantity: 3, UnitPrice: dec("0.30")},
	}

	// 20.00 + 0.10 + 0.90; float accumulation would drift here.
	assert.Equal(t, "21.00", ItemsSubtotal(items).StringFixed(2))
}

func TestItemsSubtotal_Empty(t *testing.T) {
	assert.True(t, decimal.Zero.Equal(ItemsSubtotal(nil)))
}

func TestGrandTotal(t *testing.T) {
	items := []OrderItem{
		{ProductID: "P001", Quantity: 2, UnitPrice: dec("10.00")},
	}

	tests := []struct {
		name         string
		shippingCost *decimal.Decimal
		expected     string
	}{
		{
			name:         "nil shipping cost counts as zero",
			shippingCost: nil,
			expected:     "20.00",
		},
		{
			name:         "shipping cost added to subtotal",
			shippingCost: ptr(dec("4.50")),
			expected:     "24.50",
		},
		{
			name:         "zero shipping cost",
			shippingCost: ptr(decimal.Zero),
			expected:     "20.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GrandTotal(items, tt.shippingCost).StringFixed(2))
		})
	}
}

func TestGrandTotal_RandomizedItems(t *testing.T) {
	for i := 0; i < 25; i++ {
		items := make([]OrderItem, gofakeit.Number(0, 8))
		expected := decimal.Zero
		for j := range items {
			qty := gofakeit.Number(0, 50)
			price := decimal.NewFromFloat(gofakeit.Price(0.5, 500))
			items[j] = OrderItem{
				ProductID:   gofakeit.UUID(),
				ProductName: gofakeit.ProductName(),
				Quantity:    qty,
				UnitPrice:   price,
			}
			expected = expected.Add(price.Mul(decimal.NewFromInt(int64(qty))))
		}
		shipping := decimal.NewFromFloat(gofakeit.Price(0, 50))

		assert.True(t, expected.Add(shipping).Equal(GrandTotal(items, &shipping)))
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
