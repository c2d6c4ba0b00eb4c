package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput        = "STOREFRONT_BAD_INPUT"
	ErrorAuthRequired    = "STOREFRONT_AUTH_REQUIRED"
	ErrorNotFound        = "STOREFRONT_NOT_FOUND"
	ErrorTimeout         = "STOREFRONT_TIMEOUT"
	ErrorRateLimited     = "STOREFRONT_RATE_LIMITED"
	ErrorExternalFailure = "STOREFRONT_EXTERNAL_FAILURE"
	ErrorDecodeFailure   = "STOREFRONT_DECODE_FAILURE"
	ErrorInternal        = "STOREFRONT_INTERNAL_ERROR"
)

// AuthRequiredError is the signal produced when an operation that needs a
// credential is attempted without one. Stores short-circuit on it before any
// network call is made.
func AuthRequiredError(operation string) *goerrors.Error {
	return goerrors.New("authentication required: please login first", goerrors.CategoryAuth).
		WithCode(http.StatusUnauthorized).
		WithTextCode(ErrorAuthRequired).
		WithMetadata(map[string]any{"operation": strings.TrimSpace(operation)})
}

func IsAuthRequired(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == ErrorAuthRequired
}

func BadInputError(message string) *goerrors.Error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorBadInput)
}

// APIError wraps a failure response from the storefront API, carrying the
// server-provided message (or fallback), the HTTP status, and the endpoint.
func APIError(message string, statusCode int, endpoint string) *goerrors.Error {
	if strings.TrimSpace(message) == "" {
		message = "storefront request failed"
	}
	category := categoryForStatus(statusCode)
	return goerrors.New(message, category).
		WithCode(statusCode).
		WithTextCode(textCodeForCategory(category)).
		WithMetadata(map[string]any{
			"status_code": statusCode,
			"endpoint":    strings.TrimSpace(endpoint),
		})
}

// UserMessage extracts the human-readable message from any error produced by
// this module, falling back to the raw error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && strings.TrimSpace(rich.Message) != "" {
		return rich.Message
	}
	return err.Error()
}

func categoryForStatus(statusCode int) goerrors.Category {
	switch {
	case statusCode == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case statusCode == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case statusCode == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case statusCode == http.StatusConflict:
		return goerrors.CategoryConflict
	case statusCode == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	case statusCode >= 400 && statusCode < 500:
		return goerrors.CategoryBadInput
	default:
		return goerrors.CategoryExternal
	}
}

func textCodeForCategory(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorAuthRequired
	case goerrors.CategoryNotFound:
		return ErrorNotFound
	case goerrors.CategoryRateLimit:
		return ErrorRateLimited
	case goerrors.CategoryExternal:
		return ErrorExternalFailure
	default:
		return ErrorInternal
	}
}
