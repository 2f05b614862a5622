package errors

import "math"

// ValidateFinite rejects NaN and infinite values for the named quantity.
// Non-finite geometry can only come from an upstream computation bug, so it
// fails fast instead of propagating into layout math.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) {
		return New(ErrCodeInvalidGeometry, "%s is NaN", name)
	}
	if math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "%s is infinite", name)
	}
	return nil
}

// ValidateLength rejects non-finite or negative lengths.
func ValidateLength(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return New(ErrCodeInvalidGeometry, "%s must be >= 0, got %v", name, v)
	}
	return nil
}

// ValidatePositive rejects values that are not strictly positive, for
// quantities like page dimensions where zero is meaningless.
func ValidatePositive(name string, v float64) error {
	if err := ValidateFinite(name, v); err != nil {
		return err
	}
	if v <= 0 {
		return New(ErrCodeInvalidPage, "%s must be > 0, got %v", name, v)
	}
	return nil
}
