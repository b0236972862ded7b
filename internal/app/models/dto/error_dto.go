package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/classpoints/internal/app/models/dto/enums"
)

// ErrorCode represents standardized error codes
type ErrorCode = enums.ErrorCode

// Standard error codes for the application
const (
	ErrorCodeInvalidCredentials    = enums.ErrorCodeInvalidCredentials
	ErrorCodeInvalidToken          = enums.ErrorCodeInvalidToken
	ErrorCodeExpiredToken          = enums.ErrorCodeExpiredToken
	ErrorCodeTokenNotFound         = enums.ErrorCodeTokenNotFound
	ErrorCodeUnauthorized          = enums.ErrorCodeUnauthorized
	ErrorCodeResourceNotFound      = enums.ErrorCodeResourceNotFound
	ErrorCodeResourceAlreadyExists = enums.ErrorCodeResourceAlreadyExists
	ErrorCodeConflict              = enums.ErrorCodeConflict
	ErrorCodeValidationFailed      = enums.ErrorCodeValidationFailed
	ErrorCodeInternalServer        = enums.ErrorCodeInternalServer
	ErrorCodeDatabaseError         = enums.ErrorCodeDatabaseError
	ErrorCodeBadRequest            = enums.ErrorCodeBadRequest
	ErrorCodeForbidden             = enums.ErrorCodeForbidden
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity = enums.ErrorSeverity

// Severity levels
const (
	ErrorSeverityInfo     = enums.ErrorSeverityInfo
	ErrorSeverityWarning  = enums.ErrorSeverityWarning
	ErrorSeverityError    = enums.ErrorSeverityError
	ErrorSeverityCritical = enums.ErrorSeverityCritical
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Field     string        `json:"field,omitempty"`
	Severity  ErrorSeverity `json:"severity"`
	Details   interface{}   `json:"details,omitempty"`
	DebugInfo string        `json:"debugInfo,omitempty"`
}

// ErrorResponse represents the standard error response structure.
// Message repeats the detail message so simple clients can read a flat field.
type ErrorResponse struct {
	Success   bool         `json:"success"`
	Message   string       `json:"message"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithSeverity sets the severity level of the error
func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// WithDebugInfo adds debug information (for development/testing only)
func (e *ErrorDetail) WithDebugInfo(format string, args ...interface{}) *ErrorDetail {
	e.DebugInfo = fmt.Sprintf(format, args...)
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Message:   errorDetail.Message,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}

// ValidationErrors represents multiple validation errors
type ValidationErrors struct {
	Errors []ErrorDetail `json:"errors"`
}

// NewValidationErrors creates a new validation errors container
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ErrorDetail, 0),
	}
}

// AddError adds a validation error to the container
func (v *ValidationErrors) AddError(field, message string) *ValidationErrors {
	v.Errors = append(v.Errors, ErrorDetail{
		Code:     ErrorCodeValidationFailed,
		Message:  message,
		Field:    field,
		Severity: ErrorSeverityError,
	})
	return v
}

// HasErrors checks if there are any validation errors
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// HandleValidationError converts a binding error into an error detail.
// validator errors are listed per field, anything else is a malformed body.
func HandleValidationError(err error) *ErrorDetail {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return NewErrorDetail(ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	}

	list := NewValidationErrors()
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		msg := FormatFieldError(fe)
		list.AddError(fe.Field(), msg)
		messages = append(messages, msg)
	}

	detail := NewErrorDetail(ErrorCodeValidationFailed, strings.Join(messages, "; ")).WithDetails(list.Errors)
	if len(fieldErrors) == 1 {
		detail.WithField(fieldErrors[0].Field())
	}
	return detail
}

// FormatFieldError creates a human-readable validation error message
func FormatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
