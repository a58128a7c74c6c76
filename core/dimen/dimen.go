/*
Package dimen implements dimensions and units for screen layout.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"fmt"
	"math"
)

// DU is a 'device unit' type for layout arithmetic.
// Two device units make up one screen pixel, which leaves a half-pixel
// resolution for centering odd lengths. All layout arithmetic is done in
// integer device units; overflow is a fatal condition.
type DU int32

// Some pre-defined dimensions
const (
	Zero DU = 0
	PX   DU = 2 // one screen pixel
)

// UnitsPerPixel is the fixed scale between device units and screen pixels.
const UnitsPerPixel DU = PX

// Infinity is the largest possible dimension.
const Infinity DU = math.MaxInt32

// Stringer implementation.
func (d DU) String() string {
	return fmt.Sprintf("%ddu", int32(d))
}

// Pixels returns a dimension as a (possibly fractional) count of screen pixels.
func (d DU) Pixels() float64 {
	return float64(d) / float64(UnitsPerPixel)
}

// FromPixels converts a pixel count to device units.
func FromPixels(px int32) DU {
	return DU(px) * UnitsPerPixel
}

// From26_6 converts a 26.6 fixed-point font measurement to device units.
// Font collaborators report measurements in fixed-point font units; layout
// first truncates to whole pixels, then scales to device units.
func From26_6(f int32) DU {
	return DU(f/64) * UnitsPerPixel
}

// Point is a point on the screen.
type Point struct {
	X, Y DU
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b DU) DU {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b DU) DU {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts d to the closed interval [min, max].
// min wins over max if the interval is empty.
func Clamp(d, min, max DU) DU {
	if d > max {
		d = max
	}
	if d < min {
		d = min
	}
	return d
}

// Add returns a+b, checking for numeric overflow.
func Add(a, b DU) (DU, bool) {
	s := int64(a) + int64(b)
	if s > int64(Infinity) || s < math.MinInt32 {
		return 0, false
	}
	return DU(s), true
}
