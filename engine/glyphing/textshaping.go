/*
Package glyphing defines the text-shaping contract of the formatter.

Shapers turn Unicode code-points into positioned glyphs. All shaper
measurements are 26.6 fixed-point pixel values; the layout engine divides
by 64 and scales to device units (see dimen.From26_6).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
)

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
//
//go:generate stringer -type=Direction
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

// A ShapedGlyph is one glyph of a shaper's output.
type ShapedGlyph struct {
	ClusterID int    // position of code-point(s) for this glyph in the input
	GID       uint16 // glyph index within the font; 0 is reserved (.notdef)
	CodePoint rune   // code-point of first rune to produce this glyph
	XAdvance  int32  // 26.6 advance after the glyph has been set
	XBearing  int32  // 26.6 left side bearing of the ink box
	Width     int32  // 26.6 width of the ink box
}

func (g ShapedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, advance=%d)", g.GID, g.XAdvance)
}

// FontExtents are the vertical metrics of a font at a given size, as 26.6
// fixed-point pixel values. Descender is negative below the baseline.
type FontExtents struct {
	Ascender  int32
	Descender int32
	LineGap   int32
}

// Params collects shaping parameters.
type Params struct {
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs []ShapedGlyph // resulting sequence of glyphs
	W      int32         // 26.6 width of the sequence
}

// A Shaper creates a sequence of glyphs from a sequence of Unicode
// code-points, and reports the vertical extents of the font it shapes
// with. Shapers are synchronous and must be safe for reentrant use
// within a single layout pass.
//
// Clients may provide buf to avoid allocations; Shape will wrap it into
// the returned sequence.
type Shaper interface {
	Shape(text io.RuneReader, buf []ShapedGlyph, params Params) (GlyphSequence, error)
	FontExtents() FontExtents
}
