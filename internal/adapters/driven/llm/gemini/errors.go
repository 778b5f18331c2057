package gemini

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// Gemini API failure classes.
var (
	// ErrUnauthorized indicates a missing, invalid or revoked API key.
	ErrUnauthorized = errors.New("gemini: API key rejected")

	// ErrModelNotFound indicates the configured model does not exist.
	ErrModelNotFound = errors.New("gemini: model not found")

	// ErrRateLimited indicates the request rate or quota was exceeded.
	ErrRateLimited = errors.New("gemini: rate limit or quota exceeded")
)

// classify wraps an API error with the matching failure class so callers
// can test for it with errors.Is. Other errors are returned unchanged.
func classify(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case http.StatusBadRequest:
		// The API reports an invalid key as a 400 with an API_KEY_INVALID reason.
		for _, d := range apiErr.Details {
			if d["reason"] == "API_KEY_INVALID" {
				return fmt.Errorf("%w: %w", ErrUnauthorized, err)
			}
		}
		return err
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrModelNotFound, err)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return err
	}
}

// asAPIError extracts the client's API error, returned by value or pointer.
func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}
