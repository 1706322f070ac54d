package errors

import (
	"fmt"
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() any      // Structured error context (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string, details any) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code, so customised copies
// still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns structured error context
func (e *BaseError) Details() any {
	return e.details
}

// WithDetails returns a copy carrying structured details
func (e *BaseError) WithDetails(details any) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessagef returns a copy with a formatted user-facing message
func (e *BaseError) WithMessagef(format string, args ...any) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   fmt.Sprintf(format, args...),
		details:   e.details,
	}
}

// Predefined error types
var (
	// Request errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
		nil,
	)

	// Catalogue and pricing errors
	ErrProductNotFound = NewBaseError(
		http.StatusNotFound,
		"PRODUCT_NOT_FOUND",
		"Product not found",
		nil,
	)

	ErrPriceMismatch = NewBaseError(
		http.StatusBadRequest,
		"PRICE_MISMATCH",
		"Price mismatch",
		nil,
	)

	ErrSizeRequired = NewBaseError(
		http.StatusBadRequest,
		"SIZE_REQUIRED",
		"Size selection required",
		nil,
	)

	ErrInsufficientStock = NewBaseError(
		http.StatusBadRequest,
		"INSUFFICIENT_STOCK",
		"Insufficient stock",
		nil,
	)

	ErrStockConflict = NewBaseError(
		http.StatusConflict,
		"STOCK_CONFLICT",
		"Stock changed while placing the order, please retry",
		nil,
	)

	ErrCartMismatch = NewBaseError(
		http.StatusBadRequest,
		"CART_MISMATCH",
		"Cart items do not match server cart",
		nil,
	)

	ErrAmountMismatch = NewBaseError(
		http.StatusBadRequest,
		"AMOUNT_MISMATCH",
		"Total amount mismatch",
		nil,
	)

	ErrDiscountMismatch = NewBaseError(
		http.StatusBadRequest,
		"DISCOUNT_MISMATCH",
		"Discount mismatch",
		nil,
	)

	// Offer code errors
	ErrInvalidOfferCode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_OFFER_CODE",
		"Invalid offer code",
		nil,
	)

	ErrOfferExpired = NewBaseError(
		http.StatusBadRequest,
		"OFFER_EXPIRED",
		"Offer code has expired",
		nil,
	)

	ErrOfferAlreadyUsed = NewBaseError(
		http.StatusBadRequest,
		"OFFER_ALREADY_USED",
		"This offer code has already been used",
		nil,
	)

	ErrOfferNotFirstOrder = NewBaseError(
		http.StatusBadRequest,
		"OFFER_NOT_FIRST_ORDER",
		"Offer code is only for first orders",
		nil,
	)

	// Payment errors
	ErrPaymentGatewayUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"PAYMENT_GATEWAY_UNAVAILABLE",
		"Payment gateway is unavailable, please try again later",
		nil,
	)

	ErrInvalidSignature = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SIGNATURE",
		"Invalid payment signature",
		nil,
	)

	ErrPaymentNotCaptured = NewBaseError(
		http.StatusBadRequest,
		"PAYMENT_NOT_CAPTURED",
		"Payment not captured",
		nil,
	)

	// Order errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Order not found",
		nil,
	)

	ErrOrderAlreadyProcessed = NewBaseError(
		http.StatusBadRequest,
		"ORDER_ALREADY_PROCESSED",
		"Order already processed",
		nil,
	)

	ErrOrderExpired = NewBaseError(
		http.StatusConflict,
		"ORDER_EXPIRED",
		"Order reservation expired and the items are no longer available. Your payment will be refunded.",
		nil,
	)

	ErrTrackingUnavailable = NewBaseError(
		http.StatusNotFound,
		"TRACKING_UNAVAILABLE",
		"No tracking information available",
		nil,
	)

	ErrShippingGatewayUnavailable = NewBaseError(
		http.StatusInternalServerError,
		"SHIPPING_GATEWAY_UNAVAILABLE",
		"Shipping gateway is unavailable, please try again later",
		nil,
	)

	// Cart errors
	ErrCartNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_NOT_FOUND",
		"Cart not found",
		nil,
	)

	ErrCartItemNotFound = NewBaseError(
		http.StatusNotFound,
		"CART_ITEM_NOT_FOUND",
		"Item not found in cart",
		nil,
	)

	// Authentication-related errors
	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"User not authenticated",
		nil,
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		nil,
	)

	ErrEmailNotVerified = NewBaseError(
		http.StatusUnauthorized,
		"EMAIL_NOT_VERIFIED",
		"Please verify your email before logging in",
		nil,
	)

	ErrAccountLocked = NewBaseError(
		http.StatusLocked,
		"ACCOUNT_LOCKED",
		"Too many attempts. Please try again later.",
		nil,
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		nil,
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error, please try again later",
		nil,
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		nil,
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() any {
	return e.details
}
