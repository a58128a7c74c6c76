package frame

import (
	"fmt"

	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom/style"
)

// Size is a width/height pair in device units.
type Size struct {
	W, H dimen.DU
}

// BoxOffsets is the geometry record of a block box.
//
// BorderPos places the border box relative to the parent's content box.
// ContentPos places the content box relative to the own border box.
// The border size closes over content size plus trailing padding and
// border:
//
//	BorderSize.W = ContentPos.X + ContentSize.W + padding-right + border-right
//
// and analogously for the height, which is finalized only after the
// children have been laid out.
type BoxOffsets struct {
	BorderPos   dimen.Point
	BorderSize  Size
	ContentPos  dimen.Point
	ContentSize Size
}

// For borders and margins, 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Borders holds used border widths per side. Always ≥ 0.
type Borders struct {
	Left, Right, Top, Bottom dimen.DU
}

// Margins holds used margins per side. May be negative.
type Margins struct {
	Left, Right, Top, Bottom dimen.DU
}

// Insets is the paint-time shift of a relatively positioned box.
type Insets struct {
	X, Y dimen.DU
}

// BorderColors holds the used border colors per side.
type BorderColors struct {
	Left, Right, Top, Bottom style.Color
}

// Background holds the used background of a box.
type Background struct {
	Color style.Color
}

func (o BoxOffsets) String() string {
	return fmt.Sprintf("box{border=(%v,%v) %vx%v content=(%v,%v) %vx%v}",
		o.BorderPos.X, o.BorderPos.Y, o.BorderSize.W, o.BorderSize.H,
		o.ContentPos.X, o.ContentPos.Y, o.ContentSize.W, o.ContentSize.H)
}

// SolveInsets resolves the inset properties of a relatively positioned box
// into a shift vector. The left inset beats the right one, the top inset
// beats the bottom one; percentages resolve against the containing block.
func SolveInsets(in style.ComputedInsets, cbWidth, cbHeight dimen.DU) Insets {
	var shift Insets
	if x, ok := in.Left.Resolve(cbWidth); ok {
		shift.X = x
	} else if x, ok := in.Right.Resolve(cbWidth); ok {
		shift.X = -x
	}
	if y, ok := in.Top.Resolve(cbHeight); ok {
		shift.Y = y
	} else if y, ok := in.Bottom.Resolve(cbHeight); ok {
		shift.Y = -y
	}
	return shift
}
