package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWireStatus(t *testing.T) {
	tests := []struct {
		wire     string
		expected OrderStatus
	}{
		{"PENDING", StatusPending},
		{"PROCESSING", StatusProcessing},
		{"COMPLETED", StatusCompleted},
		{"CANCELLED", StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			status, err := ParseWireStatus(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestParseWireStatus_Unknown(t *testing.T) {
	for _, wire := range []string{"", "pending", "Pending", "SHIPPED", "UNKNOWN"} {
		_, err := ParseWireStatus(wire)
		assert.Error(t, err, "wire value %q must be rejected", wire)
	}
}

func TestOrderStatus_Wire_RoundTrip(t *testing.T) {
	for _, status := range OrderStatuses() {
		parsed, err := ParseWireStatus(status.Wire())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, status)

	_, err = ParseStatus("COMPLETED")
	assert.Error(t, err)
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, OrderStatus("Shipped").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
