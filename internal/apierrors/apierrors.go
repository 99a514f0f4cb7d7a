// Package apierrors contains the error kinds surfaced by the BitPay client.
//
// Callers distinguish them with the Is... helpers, which all use errors.As,
// so wrapping with %w keeps them recognisable.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success answer of the BitPay API. It is passed to the caller unmodified.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("bitpay api error: status %d, code %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("bitpay api error: status %d: %s", e.StatusCode, e.Message)
}

func NewAPIError(status int, code string, message string) error {
	return &APIError{
		StatusCode: status,
		Code:       code,
		Message:    message,
	}
}

// TokenNotConfiguredError is raised before any network call when no token is cached for a facade.
type TokenNotConfiguredError struct {
	Facade string
}

func (e *TokenNotConfiguredError) Error() string {
	return fmt.Sprintf("no api token configured for facade %s", e.Facade)
}

func NewTokenNotConfigured(facade string) error {
	return &TokenNotConfiguredError{Facade: facade}
}

// DeserializeError means the request reached the server, but the response could not be mapped.
type DeserializeError struct {
	ResourceType string
	Cause        error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("failed to deserialize BitPay server response (%s): %v", e.ResourceType, e.Cause)
}

func (e *DeserializeError) Unwrap() error {
	return e.Cause
}

func NewDeserialize(resourceType string, cause error) error {
	return &DeserializeError{
		ResourceType: resourceType,
		Cause:        cause,
	}
}

// ValidationError is raised on the client side, before a request is sent.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func NewValidation(field string, value string, message string) error {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

func NewInvalidCurrency(code string) error {
	return NewValidation("currency", code, "currency code must be a supported ISO 4217 or crypto currency code")
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func IsAPIError(err error) bool {
	return AsAPIError(err) != nil
}

func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

func IsTokenNotConfigured(err error) bool {
	var target *TokenNotConfiguredError
	return errors.As(err, &target)
}

func IsDeserialize(err error) bool {
	var target *DeserializeError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func hasStatus(err error, status int) bool {
	if apiErr := AsAPIError(err); apiErr != nil {
		return apiErr.StatusCode == status
	}
	return false
}
