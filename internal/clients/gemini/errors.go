package gemini

import (
	"errors"
	"strings"
)

// ErrNotConfigured indicates no API credential was supplied. Calls fail with
// this error instead of the process refusing to start.
var ErrNotConfigured = errors.New("gemini: API key not configured")

// rateLimitMarkers are substrings that identify provider quota/rate-limit
// failures in error text.
var rateLimitMarkers = []string{
	"429",
	"rate limit",
	"ratelimit",
	"quota",
	"resource_exhausted",
	"resource exhausted",
}

// IsRateLimited reports whether err looks like a provider quota or
// rate-limit failure. Callers surface these as retry-later (HTTP 429)
// instead of generic failures.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	return IsRateLimitText(err.Error())
}

// IsRateLimitText reports whether s contains a rate-limit marker. Used where
// the error has already been flattened into a message, e.g. a validation
// rejection reason carrying a gateway failure.
func IsRateLimitText(s string) bool {
	lower := strings.ToLower(s)
	for _, marker := range rateLimitMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
