// Package edit holds the draft state of a single order being edited. The
// draft is decoupled from the list until a save succeeds; financial totals
// are derived from the draft on every read and never stored independently.
package edit

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"orderdesk/internal/config"
	"orderdesk/internal/model"
)

// Session is one order's editable working copy. It is not safe for
// concurrent use; the caller serializes access, matching the event-driven
// UI it backs.
type Session struct {
	orig   model.OrderSummary
	policy config.PolicyConfig
	logger zerolog.Logger

	status       model.OrderStatus
	items        []model.OrderItem
	country      string
	city         string
	addressLine  string
	shippingCost *decimal.Decimal

	// editable is fixed when the session opens: line items and address are
	// mutable only for orders that were Pending at that moment. Changing
	// the draft status later does not widen or narrow it.
	editable bool
	closed   bool
}

// Open starts an edit session from one list row.
func Open(order model.OrderSummary, policy config.PolicyConfig, logger zerolog.Logger) *Session {
	items := make([]model.OrderItem, len(order.Items))
	copy(items, order.Items)

	var shippingCost *decimal.Decimal
	if order.ShippingCost != nil {
		cost := *order.ShippingCost
		shippingCost = &cost
	}

	return &Session{
		orig:         order,
		policy:       policy,
		logger:       logger.With().Str("component", "edit-session").Str("order_id", order.ID).Logger(),
		status:       order.Status,
		items:        items,
		addressLine:  order.ShippingAddress,
		shippingCost: shippingCost,
		editable:     order.Status == model.StatusPending,
	}
}

// Order returns the unmodified order the session was opened from.
func (s *Session) Order() model.OrderSummary { return s.orig }

// OrderID returns the identifier of the order being edited.
func (s *Session) OrderID() string { return s.orig.ID }

// Editable reports whether line items and address fields accept changes.
func (s *Session) Editable() bool { return s.editable }

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool { return s.closed }

// Status returns the draft status.
func (s *Session) Status() model.OrderStatus { return s.status }

// Items returns a copy of the draft line items.
func (s *Session) Items() []model.OrderItem {
	items := make([]model.OrderItem, len(s.items))
	copy(items, s.items)
	return items
}

// Country returns the draft country.
func (s *Session) Country() string { return s.country }

// City returns the draft city.
func (s *Session) City() string { return s.city }

// AddressLine returns the draft street address.
func (s *Session) AddressLine() string { return s.addressLine }

// ShippingCost returns the draft shipping cost, nil when unset.
func (s *Session) ShippingCost() *decimal.Decimal {
	if s.shippingCost == nil {
		return nil
	}
	cost := *s.shippingCost
	return &cost
}

// Subtotal derives the sum of line subtotals from the current draft.
func (s *Session) Subtotal() decimal.Decimal {
	return model.ItemsSubtotal(s.items)
}

// Total derives subtotal plus shipping cost from the current draft. It is
// recomputed on every call; there is no stored total to drift out of sync.
func (s *Session) Total() decimal.Decimal {
	return model.GrandTotal(s.items, s.shippingCost)
}

// SetQuantity sets a line item's quantity, clamping negatives to zero.
func (s *Session) SetQuantity(productID string, quantity int) error {
	if err := s.mutable(); err != nil {
		return err
	}

	if quantity < 0 {
		quantity = 0
	}

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			return nil
		}
	}
	return model.ErrItemNotFound
}

// RemoveItem removes a line item from the draft entirely.
func (s *Session) RemoveItem(productID string) error {
	if err := s.mutable(); err != nil {
		return err
	}

	before := len(s.items)
	s.items = lo.Reject(s.items, func(item model.OrderItem, _ int) bool {
		return item.ProductID == productID
	})
	if len(s.items) == before {
		return model.ErrItemNotFound
	}
	return nil
}

// SetShippingCost sets the shipping cost. nil means "not set" and counts
// as zero in the total; negative values are rejected.
func (s *Session) SetShippingCost(cost *decimal.Decimal) error {
	if err := s.mutable(); err != nil {
		return err
	}

	if cost == nil {
		s.shippingCost = nil
		return nil
	}
	if cost.IsNegative() {
		return model.ErrNegativeAmount
	}

	c := *cost
	s.shippingCost = &c
	return nil
}

// SetCountry sets the draft country and resets the city: city options are
// only valid for the currently selected country.
func (s *Session) SetCountry(country string) error {
	if err := s.mutable(); err != nil {
		return err
	}

	s.country = country
	s.city = ""
	return nil
}

// SetCity sets the draft city.
func (s *Session) SetCity(city string) error {
	if err := s.mutable(); err != nil {
		return err
	}

	s.city = city
	return nil
}

// SetAddressLine sets the draft street address.
func (s *Session) SetAddressLine(line string) error {
	if err := s.mutable(); err != nil {
		return err
	}

	s.addressLine = line
	return nil
}

// SetStatus sets the draft status. Whether a non-Pending order may still
// change status is a policy decision; field editability established at
// open time is unaffected either way.
func (s *Session) SetStatus(status model.OrderStatus) error {
	if s.closed {
		return model.ErrSessionClosed
	}
	if !status.IsValid() {
		return model.ErrInvalidStatus
	}
	if !s.editable && !s.policy.AllowStatusEditWhenClosed {
		return model.ErrNotEditable
	}

	s.status = status
	return nil
}

// ShippingAddress joins the structured address parts with ", ", omitting
// empty parts. When no structured part was edited, the original flattened
// address carried in the address line is returned as-is.
func (s *Session) ShippingAddress() string {
	parts := lo.Filter([]string{s.country, s.city, s.addressLine}, func(part string, _ int) bool {
		return part != ""
	})
	return strings.Join(parts, ", ")
}

// Submit builds the minimal update payload: status in wire form, the
// joined shipping address, and items reduced to product/quantity pairs.
// Zero-quantity items are pruned when the policy asks for it. Submit does
// not perform any network call.
func (s *Session) Submit() (model.OrderUpdate, error) {
	if s.closed {
		return model.OrderUpdate{}, model.ErrSessionClosed
	}

	items := s.items
	if s.policy.PruneZeroQuantityOnSubmit {
		items = lo.Reject(items, func(item model.OrderItem, _ int) bool {
			return item.Quantity == 0
		})
	}

	payload := model.OrderUpdate{
		Status:          s.status.Wire(),
		ShippingAddress: s.ShippingAddress(),
		Items: lo.Map(items, func(item model.OrderItem, _ int) model.ItemQuantity {
			return model.ItemQuantity{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			}
		}),
	}

	s.logger.Debug().
		Str("status", payload.Status).
		Int("items", len(payload.Items)).
		Msg("update payload built")

	return payload, nil
}

// Summary projects the draft back into an OrderSummary for the in-place
// list patch after a successful save. The total is derived from the draft
// items and shipping cost.
func (s *Session) Summary() model.OrderSummary {
	updated := s.orig
	updated.Status = s.status
	updated.Items = s.Items()
	updated.ShippingAddress = s.ShippingAddress()
	updated.ShippingCost = s.ShippingCost()
	updated.Total = s.Total()
	return updated
}

// Close marks the session closed; further mutations fail.
func (s *Session) Close() {
	s.closed = true
}

// mutable gates item and address mutations.
func (s *Session) mutable() error {
	if s.closed {
		return model.ErrSessionClosed
	}
	if !s.editable {
		return model.ErrNotEditable
	}
	return nil
}
