package model

// Standard error codes surfaced to the user.
const (
	ErrCodeNoCredential   = "NO_CREDENTIAL"
	ErrCodeOrderNotFound  = "ORDER_NOT_FOUND"
	ErrCodeItemNotFound   = "ITEM_NOT_FOUND"
	ErrCodeNotEditable    = "ORDER_NOT_EDITABLE"
	ErrCodeInvalidStatus  = "INVALID_STATUS"
	ErrCodeSessionClosed  = "SESSION_CLOSED"
	ErrCodeNegativeAmount = "NEGATIVE_AMOUNT"
	ErrCodeRequestFailed  = "REQUEST_FAILED"
)

// DomainError carries a stable code alongside a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNoCredential   = NewDomainError(ErrCodeNoCredential, "No credential available; log in first")
	ErrOrderNotFound  = NewDomainError(ErrCodeOrderNotFound, "Order not found in the current list")
	ErrItemNotFound   = NewDomainError(ErrCodeItemNotFound, "Item not found in the order")
	ErrNotEditable    = NewDomainError(ErrCodeNotEditable, "Order is read-only in its current status")
	ErrInvalidStatus  = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrSessionClosed  = NewDomainError(ErrCodeSessionClosed, "Edit session has been closed")
	ErrNegativeAmount = NewDomainError(ErrCodeNegativeAmount, "Amount must not be negative")
)
