/*
Package monospace implements a shaper for monospace typesetting.

Every grapheme occupies a whole number of fixed-width cells, East Asian
wide graphemes two. The shaper needs no font and is fully deterministic,
which makes it the workhorse for layout tests and terminal-like output.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"io"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/visfmt/engine/glyphing"
)

type msshape struct {
	cell             int32 // 26.6 cell width
	graphemeSplitter *segment.Segmenter
	context          *uax11.Context
}

// Shaper creates a shaper for monospace typesetting.
// cellPx is the cell width in pixels; if it is zero, it will be set to 8.
func Shaper(cellPx int32, context *uax11.Context) glyphing.Shaper {
	if cellPx == 0 {
		cellPx = 8
	}
	sh := &msshape{
		cell:    cellPx << 6,
		context: context,
	}
	if context == nil {
		sh.context = uax11.LatinContext
	}
	onGraphemes := grapheme.NewBreaker(1)
	sh.graphemeSplitter = segment.NewSegmenter(onGraphemes)
	grapheme.SetupGraphemeClasses()
	return sh
}

// Shape creates a glyph sequence from a text. Glyph indices are synthetic:
// the code-point folded into 16 bits, never 0.
func (ms *msshape) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, params glyphing.Params) (glyphing.GlyphSequence, error) {
	if text == nil {
		return glyphing.GlyphSequence{}, nil
	}
	seq := glyphing.GlyphSequence{Glyphs: buf}
	if seq.Glyphs != nil {
		seq.Glyphs = seq.Glyphs[:0]
	}
	ms.graphemeSplitter.Init(text)
	i := 0
	for ms.graphemeSplitter.Next() {
		grphm := ms.graphemeSplitter.Bytes()
		w := uax11.Width(grphm, ms.context)
		codepoint, _ := utf8.DecodeRune(grphm)
		g := glyphing.ShapedGlyph{
			ClusterID: i,
			GID:       syntheticGID(codepoint),
			CodePoint: codepoint,
			XAdvance:  int32(w) * ms.cell,
			Width:     int32(w) * ms.cell,
		}
		if codepoint == ' ' {
			g.Width = 0 // whitespace has no ink and may hang at a line end
		}
		seq.Glyphs = append(seq.Glyphs, g)
		seq.W += g.XAdvance
		i++
	}
	return seq, nil
}

// FontExtents reports cell-derived metrics: ascender 4/5 of a cell above
// the baseline, descender 1/5 below, no line gap.
func (ms *msshape) FontExtents() glyphing.FontExtents {
	return glyphing.FontExtents{
		Ascender:  ms.cell * 4 / 5,
		Descender: -ms.cell / 5,
		LineGap:   0,
	}
}

func syntheticGID(r rune) uint16 {
	gid := uint16(r)
	if gid == 0 {
		gid = 1
	}
	return gid
}

var _ glyphing.Shaper = &msshape{}
