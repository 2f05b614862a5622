// Package units converts canonical-millimeter values to display strings.
//
// All geometry in shaftdraw is stored in millimeters; this package owns the
// presentation side only. The geometry engine treats the resulting labels as
// opaque strings.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/shaftworks/shaftdraw/pkg/errors"
)

// MmPerInch is the exact definition of the international inch.
const MmPerInch = 25.4

// Unit selects a display format for canonical-millimeter values.
type Unit int

const (
	// Millimeter renders values like "1234.5".
	Millimeter Unit = iota
	// DecimalInch renders values like "48.602\"".
	DecimalInch
	// FractionalInch renders values like "1-3/8\"", rounded to 1/64.
	FractionalInch
)

// Parse maps a document unit string to a Unit.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mm", "millimeter", "millimeters":
		return Millimeter, nil
	case "in", "inch", "inches":
		return DecimalInch, nil
	case "frac", "fraction", "fractional", "fractional-inch":
		return FractionalInch, nil
	default:
		return Millimeter, errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q (use mm, in, or fractional-inch)", s)
	}
}

// String returns the document spelling of the unit.
func (u Unit) String() string {
	switch u {
	case DecimalInch:
		return "in"
	case FractionalInch:
		return "fractional-inch"
	default:
		return "mm"
	}
}

// Format renders a canonical-millimeter value in the given unit.
func Format(mm float64, u Unit) string {
	switch u {
	case DecimalInch:
		return fmt.Sprintf("%.3f\"", mm/MmPerInch)
	case FractionalInch:
		return formatFractional(mm / MmPerInch)
	default:
		return trimZeros(fmt.Sprintf("%.2f", mm))
	}
}

// formatFractional renders inches as whole-and-fraction to the nearest 1/64,
// the drafting convention for imperial shaft drawings.
func formatFractional(in float64) string {
	neg := in < 0
	in = math.Abs(in)

	sixtyFourths := int(math.Round(in * 64))
	whole := sixtyFourths / 64
	num := sixtyFourths % 64

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	switch {
	case num == 0:
		fmt.Fprintf(&b, "%d", whole)
	case whole == 0:
		den := 64
		for num%2 == 0 {
			num /= 2
			den /= 2
		}
		fmt.Fprintf(&b, "%d/%d", num, den)
	default:
		den := 64
		for num%2 == 0 {
			num /= 2
			den /= 2
		}
		fmt.Fprintf(&b, "%d-%d/%d", whole, num, den)
	}
	b.WriteByte('"')
	return b.String()
}

// trimZeros drops a trailing ".00" or final zero so millimeter labels stay
// compact ("40" not "40.00", "12.5" not "12.50").
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
