package css

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/npillmayer/visfmt/core/dimen"
)

const (
	dimenUnset uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenNone     uint32 = 0x0003 // keyword 'none', legal for max-sizes
	kindMask      uint32 = 0x000f

	dimenPercent uint32 = 0x0100
)

// DimenT is an option type for CSS dimensions.
//
//	type DimenT
//		= Unset
//		| Auto
//		| NoneDimen
//		| JustDimen dimen
//		| Percentage n
type DimenT struct {
	d     dimen.DU
	pcnt  int32
	flags uint32
}

// Dimen creates an unset dimension.
func Dimen() DimenT {
	return DimenT{}
}

// Auto creates a dimension with value 'auto'.
func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

// NoneDimen creates a dimension with keyword value 'none'.
func NoneDimen() DimenT {
	return DimenT{flags: dimenNone}
}

// SomeDimen creates a CSS dimension with a fixed value of x.
func SomeDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n int32) DimenT {
	return DimenT{pcnt: n, flags: dimenPercent}
}

// IsNone returns true for an unset dimension.
func (d DimenT) IsNone() bool {
	return d.flags == dimenUnset
}

// IsAuto returns true for keyword value 'auto'.
func (d DimenT) IsAuto() bool {
	return d.flags&kindMask == dimenAuto
}

// IsNoneKeyword returns true for keyword value 'none'.
func (d DimenT) IsNoneKeyword() bool {
	return d.flags&kindMask == dimenNone
}

// IsAbsolute returns true for a dimension with a fixed value.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsPercent returns true for a %-relative dimension.
func (d DimenT) IsPercent() bool {
	return d.flags&dimenPercent > 0
}

// Unwrap returns the fixed value of an absolute dimension, dimen.Zero otherwise.
func (d DimenT) Unwrap() dimen.DU {
	if d.IsAbsolute() {
		return d.d
	}
	return dimen.Zero
}

// Pcnt returns the percentage of a %-relative dimension, 0 otherwise.
func (d DimenT) Pcnt() int32 {
	if d.IsPercent() {
		return d.pcnt
	}
	return 0
}

// Equals compares two dimensions for structural equality.
func (d DimenT) Equals(other DimenT) bool {
	return d == other
}

// Resolve returns a fixed value for an absolute or %-relative dimension,
// the latter resolved against basis. The second return value is false for
// every other kind of dimension.
func (d DimenT) Resolve(basis dimen.DU) (dimen.DU, bool) {
	switch {
	case d.IsAbsolute():
		return d.d, true
	case d.IsPercent():
		return dimen.DU(int64(d.pcnt) * int64(basis) / 100), true
	}
	return 0, false
}

func (d DimenT) String() string {
	switch d.flags & kindMask {
	case dimenAuto:
		return "auto"
	case dimenNone:
		return "none"
	case dimenAbsolute:
		return d.d.String()
	}
	if d.IsPercent() {
		return fmt.Sprintf("%d%%", d.pcnt)
	}
	return "dimen.Unset"
}

// --- Expression matching ---------------------------------------------------

// DimenPatterns is a selection table for DimenPattern matching.
type DimenPatterns[T any] struct {
	Unset   T
	Auto    T
	None    T
	Just    T
	Percent T
	Default T
}

// DimenPattern matches a dimension against a pattern table.
func DimenPattern[T any](d DimenT) *DMatchExpr[T] {
	return &DMatchExpr[T]{dimen: d}
}

type DMatchExpr[T any] struct {
	dimen DimenT
}

func (m *DMatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.flags == dimenUnset:
		return patterns.Unset
	case m.dimen.IsAuto():
		return patterns.Auto
	case m.dimen.IsNoneKeyword():
		return patterns.None
	case m.dimen.IsAbsolute():
		return patterns.Just
	case m.dimen.IsPercent():
		return patterns.Percent
	}
	return patterns.Default
}

func (m *DMatchExpr[T]) With(du *dimen.DU) *DMatchExpr[T] {
	*du = m.dimen.d
	return m
}

// --- Parsing ---------------------------------------------------------------

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]+)(%|px)?$`)

// ParseDimen parses a string to return a dimension. Syntax is a CSS length
// in screen pixels, a percentage, or one of the keywords 'auto' and 'none'.
func ParseDimen(s string) (DimenT, error) {
	switch s {
	case "":
		return Dimen(), nil
	case "auto":
		return Auto(), nil
	case "none":
		return NoneDimen(), nil
	}
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return Dimen(), errors.New("format error parsing dimension")
	}
	n, err := strconv.Atoi(d[1])
	if err != nil {
		return Dimen(), errors.New("format error parsing dimension")
	}
	if len(d) > 2 && d[2] == "%" {
		return Percentage(int32(n)), nil
	}
	return SomeDimen(dimen.DU(n) * dimen.PX), nil
}

// --- Border width keywords -------------------------------------------------

// Border keyword widths in device units.
var (
	Thin   = dimen.FromPixels(1)
	Medium = dimen.FromPixels(3)
	Thick  = dimen.FromPixels(5)
)

// BorderWidthKeyword maps a border-width keyword to its fixed dimension.
// Unknown keywords map to 'medium'.
func BorderWidthKeyword(kw string) DimenT {
	switch kw {
	case "thin":
		return SomeDimen(Thin)
	case "thick":
		return SomeDimen(Thick)
	}
	return SomeDimen(Medium)
}
