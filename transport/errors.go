package transport

import (
	"context"
	"errors"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-storefront/core"
)

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

// exhaustedError is raised when every attempt failed at the network level.
// Deadline-driven failures carry the timeout text code so callers can
// distinguish a slow upstream from an unreachable one.
func exhaustedError(source error, method string, target string, attempts int) error {
	metadata := map[string]any{
		"method":   method,
		"url":      target,
		"attempts": attempts,
	}
	textCode := core.ErrorExternalFailure
	if errors.Is(source, context.DeadlineExceeded) {
		textCode = core.ErrorTimeout
	}
	if source == nil {
		source = errors.New("request failed after retries")
	}
	return goerrors.Wrap(source, goerrors.CategoryExternal, "transport: request failed after retries").
		WithCode(http.StatusBadGateway).
		WithTextCode(textCode).
		WithMetadata(metadata)
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.ErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return core.ErrorAuthRequired
	case goerrors.CategoryRateLimit:
		return core.ErrorRateLimited
	case goerrors.CategoryExternal:
		return core.ErrorExternalFailure
	default:
		return core.ErrorInternal
	}
}
