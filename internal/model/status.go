package model

import "fmt"

// OrderStatus is the display-format order status used throughout the client.
// The wire format uses uppercase strings ("PENDING"); conversion between the
// two always goes through ParseWireStatus and Wire so unknown values are
// rejected at the boundary instead of leaking through.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusCompleted  OrderStatus = "Completed"
	StatusCancelled  OrderStatus = "Cancelled"
)

var wireToStatus = map[string]OrderStatus{
	"PENDING":    StatusPending,
	"PROCESSING": StatusProcessing,
	"COMPLETED":  StatusCompleted,
	"CANCELLED":  StatusCancelled,
}

// ParseWireStatus converts an uppercase wire status into an OrderStatus.
func ParseWireStatus(s string) (OrderStatus, error) {
	status, ok := wireToStatus[s]
	if !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// ParseStatus converts a display-format status string into an OrderStatus.
func ParseStatus(s string) (OrderStatus, error) {
	for _, status := range OrderStatuses() {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Wire returns the uppercase wire representation of the status.
func (s OrderStatus) Wire() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusProcessing:
		return "PROCESSING"
	case StatusCompleted:
		return "COMPLETED"
	case StatusCancelled:
		return "CANCELLED"
	}
	return ""
}

// IsValid reports whether the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	return s.Wire() != ""
}

// OrderStatuses returns all known statuses in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled}
}
