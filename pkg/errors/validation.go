package errors

import (
	"math"
	"unicode"
)

// ValidateRange checks that a named numeric control lies in [lo, hi].
// NaN and infinities are always rejected.
func ValidateRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidControls, "%s must be a finite number", name)
	}
	if v < lo || v > hi {
		return New(ErrCodeInvalidControls, "%s must be between %g and %g, got %g", name, lo, hi, v)
	}
	return nil
}

// ValidateCount checks that a named integer control lies in [lo, hi].
func ValidateCount(name string, n, lo, hi int) error {
	if n < lo || n > hi {
		return New(ErrCodeInvalidControls, "%s must be between %d and %d, got %d", name, lo, hi, n)
	}
	return nil
}

// ValidateID validates a render identifier received from a client.
// IDs are opaque to callers but must be short printable tokens.
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "id too long (max 64 characters)")
	}
	for _, r := range id {
		if !(r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return New(ErrCodeInvalidInput, "id contains invalid characters")
		}
	}
	return nil
}
