package catalog

import (
	"errors"
	"fmt"
)

// Generic reasons used when the service gives none.
const (
	FallbackOperation = "Operation failed"
	FallbackDelete    = "Delete failed"
	FallbackPurchase  = "Purchase failed"
	FallbackRestock   = "Restock failed"
)

// Error is a request the catalog service answered with a non-2xx status.
type Error struct {
	StatusCode int
	Reason     string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// Reason picks the best human-readable explanation for err: the reason the service sent,
// then the transport error text, then fallback.
func Reason(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Reason != "" {
			return apiErr.Reason
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
