package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeInvalidPlan
	ErrorTypeInvalidPaymentMethod
	ErrorTypePaymentDeclined

	// External Errors - failures reported by the weather provider or the device
	ErrorTypeUnauthorized
	ErrorTypeRateLimited
	ErrorTypeExternalAPI
	ErrorTypeGeolocationUnavailable
	ErrorTypeGeolocationDenied

	// Infrastructure Errors - errors related to persistence
	ErrorTypeStorage

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeInvalidPlan:
		return "INVALID_PLAN_ERROR"
	case ErrorTypeInvalidPaymentMethod:
		return "INVALID_PAYMENT_METHOD_ERROR"
	case ErrorTypePaymentDeclined:
		return "PAYMENT_DECLINED_ERROR"
	case ErrorTypeUnauthorized:
		return "UNAUTHORIZED_ERROR"
	case ErrorTypeRateLimited:
		return "RATE_LIMITED_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeGeolocationUnavailable:
		return "GEOLOCATION_UNAVAILABLE_ERROR"
	case ErrorTypeGeolocationDenied:
		return "GEOLOCATION_DENIED_ERROR"
	case ErrorTypeStorage:
		return "STORAGE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used across the codebase
const (
	ValidationError             = ErrorTypeValidation
	NotFoundError               = ErrorTypeNotFound
	InvalidPlanError            = ErrorTypeInvalidPlan
	InvalidPaymentMethodError   = ErrorTypeInvalidPaymentMethod
	PaymentDeclinedError        = ErrorTypePaymentDeclined
	UnauthorizedError           = ErrorTypeUnauthorized
	RateLimitedError            = ErrorTypeRateLimited
	ExternalAPIError            = ErrorTypeExternalAPI
	GeolocationUnavailableError = ErrorTypeGeolocationUnavailable
	GeolocationDeniedError      = ErrorTypeGeolocationDenied
	StorageError                = ErrorTypeStorage
	ConfigurationError          = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewInvalidPlanError(message string) *AppError {
	return New(InvalidPlanError, message)
}

func NewInvalidPaymentMethodError(message string) *AppError {
	return New(InvalidPaymentMethodError, message)
}

func NewPaymentDeclinedError(message string) *AppError {
	return New(PaymentDeclinedError, message)
}

// External Error Constructors
func NewUnauthorizedError(message string) *AppError {
	return New(UnauthorizedError, message)
}

func NewRateLimitedError(message string) *AppError {
	return New(RateLimitedError, message)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewGeolocationUnavailableError(message string, cause error) *AppError {
	return Wrap(GeolocationUnavailableError, message, cause)
}

func NewGeolocationDeniedError(message string) *AppError {
	return New(GeolocationDeniedError, message)
}

// Infrastructure Error Constructors
func NewStorageError(message string, cause error) *AppError {
	return Wrap(StorageError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf returns the type of the first AppError in the chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// MessageOf returns the user-facing message of the first AppError in the chain,
// falling back to err.Error() for foreign errors.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsInvalidPlanError(err error) bool {
	return TypeOf(err) == InvalidPlanError
}

func IsInvalidPaymentMethodError(err error) bool {
	return TypeOf(err) == InvalidPaymentMethodError
}

func IsPaymentDeclinedError(err error) bool {
	return TypeOf(err) == PaymentDeclinedError
}

func IsGeolocationError(err error) bool {
	t := TypeOf(err)
	return t == GeolocationUnavailableError || t == GeolocationDeniedError
}

func IsStorageError(err error) bool {
	return TypeOf(err) == StorageError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
