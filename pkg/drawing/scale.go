package drawing

import (
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

const (
	// minAxialLength floors the axial span so a zero-length shaft still
	// produces a finite scale.
	minAxialLength = 1.0

	// MinDefaultDiameter stands in for the radial extent when no component
	// carries a diameter, so a degenerate shaft still renders something.
	MinDefaultDiameter = 10.0
)

// Scale maps physical shaft geometry onto the drawing plane with a single
// linear factor. Both mapping functions are pure; Scale carries no
// rendering state beyond the coordinate transform.
type Scale struct {
	// Factor converts canonical millimeters to drawing millimeters.
	Factor float64
	// MinX is the minimum physical start across all components; it anchors
	// the drawing origin even when content starts before position zero.
	MinX float64
	// OriginX is the drawing-space X of MinX.
	OriginX float64
}

// ToX maps a physical axial position to drawing X.
func (s Scale) ToX(pos float64) float64 {
	return s.OriginX + (pos-s.MinX)*s.Factor
}

// ToRadius maps a physical radius to a drawing radius.
func (s Scale) ToRadius(r float64) float64 {
	return r * s.Factor
}

// ComputeScale solves the two-axis fit for the given target rectangle.
//
// The axial scale fits overallLength into targetWidth; the radial scale
// fits the largest component diameter into targetHeight (full height, since
// the profile is drawn symmetrically about a centerline). The smaller of
// the two wins, so neither axis ever overflows and aspect ratio is never
// distorted. Callers with an implicit shaft length pass the resolved
// content extent as overallLength.
func ComputeScale(resolved []shaft.Resolved, overallLength, targetWidth, targetHeight float64) (Scale, error) {
	if err := errors.ValidatePositive("target_width", targetWidth); err != nil {
		return Scale{}, err
	}
	if err := errors.ValidatePositive("target_height", targetHeight); err != nil {
		return Scale{}, err
	}
	if err := errors.ValidateLength("overall_length", overallLength); err != nil {
		return Scale{}, err
	}

	span := overallLength
	if span < minAxialLength {
		span = minAxialLength
	}
	axial := targetWidth / span

	maxDia := 0.0
	minX := 0.0
	for i, rc := range resolved {
		if d := rc.MaxDiameter(); d > maxDia {
			maxDia = d
		}
		if i == 0 || rc.Start < minX {
			minX = rc.Start
		}
	}
	if maxDia <= 0 {
		maxDia = MinDefaultDiameter
	}
	radial := targetHeight / maxDia

	factor := axial
	if radial < axial {
		factor = radial
	}

	return Scale{Factor: factor, MinX: minX}, nil
}
