package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeEmptySelection    = "EMPTY_SELECTION"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeFoodNotFound      = "FOOD_NOT_FOUND"
	ErrCodeCartLineNotFound  = "CART_LINE_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	ErrCodeNotReceived       = "ORDER_NOT_RECEIVED"
	ErrCodeAlreadyArchived   = "ORDER_ALREADY_ARCHIVED"
	ErrCodeInvalidRating     = "INVALID_RATING"
	ErrCodeInsufficientFunds = "INSUFFICIENT_BALANCE"
	ErrCodeEmailTaken        = "EMAIL_TAKEN"
	ErrCodeInvalidLogin      = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptySelection    = NewDomainError(ErrCodeEmptySelection, "No cart lines selected for checkout")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrFoodNotFound      = NewDomainError(ErrCodeFoodNotFound, "Food not found")
	ErrCartLineNotFound  = NewDomainError(ErrCodeCartLineNotFound, "Cart line not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidTransition = NewDomainError(ErrCodeInvalidTransition, "Order status cannot be advanced from its current state")
	ErrNotReceived       = NewDomainError(ErrCodeNotReceived, "Can only move to history when status is 'Received'")
	ErrAlreadyArchived   = NewDomainError(ErrCodeAlreadyArchived, "Order is already archived")
	ErrInvalidRating     = NewDomainError(ErrCodeInvalidRating, "Rating must be between 0 and 5")
	ErrInsufficientFunds = NewDomainError(ErrCodeInsufficientFunds, "Balance is not sufficient for this payment")
	ErrEmailTaken        = NewDomainError(ErrCodeEmailTaken, "An account with this email already exists")
	ErrInvalidLogin      = NewDomainError(ErrCodeInvalidLogin, "Invalid email or password")
)
