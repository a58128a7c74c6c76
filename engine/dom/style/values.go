package style

import "fmt"

// --- Cascaded sub-values ---------------------------------------------------

// CVKind is the declaration state of a cascaded sub-value.
type CVKind uint8

// Declaration states, CSS cascading level 3.
const (
	Undeclared CVKind = iota
	Declared
	Initial
	Inherit
	Unset
)

// CV is a cascaded sub-value: either a declared value of type T or one of
// the CSS-wide keywords.
type CV[T any] struct {
	kind CVKind
	v    T
}

// Set declares a concrete value.
func Set[T any](v T) CV[T] {
	return CV[T]{kind: Declared, v: v}
}

// Keyword declares a CSS-wide keyword (Initial, Inherit or Unset).
func Keyword[T any](k CVKind) CV[T] {
	return CV[T]{kind: k}
}

// Kind returns the declaration state.
func (cv CV[T]) Kind() CVKind {
	return cv.kind
}

// Value returns the declared value; only meaningful for kind Declared.
func (cv CV[T]) Value() T {
	return cv.v
}

// --- Keyword properties ----------------------------------------------------

// DisplayProp is a type for CSS property "display".
type DisplayProp uint8

//go:generate stringer -type=DisplayProp
const (
	DisplayInline DisplayProp = iota // initial value
	DisplayBlock
	DisplayInlineBlock
	DisplayNone
)

// PositionProp is a type for CSS property "position".
type PositionProp uint8

//go:generate stringer -type=PositionProp
const (
	PositionStatic PositionProp = iota // initial value
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionSticky
)

// FloatProp is a type for CSS property "float".
type FloatProp uint8

const (
	FloatNone FloatProp = iota // initial value
	FloatLeft
	FloatRight
)

// BorderStyleProp is a type for the CSS border-style properties.
// Only the distinction none/hidden vs. visible influences layout: a border
// with style none or hidden has used width 0.
type BorderStyleProp uint8

const (
	BorderNone BorderStyleProp = iota // initial value
	BorderHidden
	BorderSolid
	BorderDotted
	BorderDashed
	BorderDouble
)

// IsVisible returns false for border styles suppressing the border.
func (bs BorderStyleProp) IsVisible() bool {
	return bs != BorderNone && bs != BorderHidden
}

// --- z-index ---------------------------------------------------------------

// ZIndexT is an option type for CSS property "z-index": auto or an integer.
type ZIndexT struct {
	z    int32
	auto bool
}

// ZAuto is z-index 'auto', the initial value.
func ZAuto() ZIndexT {
	return ZIndexT{auto: true}
}

// ZInt is an integer z-index.
func ZInt(z int32) ZIndexT {
	return ZIndexT{z: z}
}

// IsAuto returns true for z-index 'auto'.
func (z ZIndexT) IsAuto() bool {
	return z.auto
}

// Unwrap returns the integer value of a non-auto z-index, 0 otherwise.
func (z ZIndexT) Unwrap() int32 {
	if z.auto {
		return 0
	}
	return z.z
}

func (z ZIndexT) String() string {
	if z.auto {
		return "auto"
	}
	return fmt.Sprintf("%d", z.z)
}

// --- Colors ----------------------------------------------------------------

// Color is an RGBA color value.
type Color struct {
	R, G, B, A uint8
}

// Transparent is rgba(0,0,0,0), the initial background color.
var Transparent = Color{}

// Black is the initial text color.
var Black = Color{A: 0xff}

// ColorT is an option type for CSS color values: a concrete color or the
// keyword 'currentColor'.
type ColorT struct {
	c       Color
	current bool
}

// SomeColor wraps a concrete color value.
func SomeColor(c Color) ColorT {
	return ColorT{c: c}
}

// CurrentColor is the keyword value 'currentColor'.
func CurrentColor() ColorT {
	return ColorT{current: true}
}

// IsCurrentColor returns true for the keyword value.
func (ct ColorT) IsCurrentColor() bool {
	return ct.current
}

// Unwrap returns the concrete color; callers resolve 'currentColor' first.
func (ct ColorT) Unwrap() Color {
	return ct.c
}
