/*
Package harfbuzz adapts the HarfBuzz shaper to the glyphing contract.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"io"
	"os"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/visfmt/engine/glyphing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'visfmt.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// --- Shaper ----------------------------------------------------------------

type hbshape struct {
	font    *hb.Font
	sfont   *sfnt.Font
	sizePx  int32
	upem    int32
	metrics xfont.Metrics
}

// ShaperForFont creates a shaper for a font given by family name, located
// through the system font directories, at a size in pixels.
func ShaperForFont(name string, sizePx int32) (glyphing.Shaper, error) {
	path, err := findfont.Find(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Shaper(data, sizePx)
}

// Shaper creates a shaper from raw font bytes at a size in pixels.
func Shaper(data []byte, sizePx int32) (glyphing.Shaper, error) {
	face, err := hbtt.Parse(bytes.NewReader(data), true)
	if err != nil {
		return nil, err
	}
	sfont, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	var sfntBuf sfnt.Buffer
	metrics, err := sfont.Metrics(&sfntBuf, fixed.I(int(sizePx)), xfont.HintingNone)
	if err != nil {
		return nil, err
	}
	sh := &hbshape{
		font:   hb.NewFont(face),
		sfont:  sfont,
		sizePx: sizePx,
		upem:   int32(sfont.UnitsPerEm()),
	}
	sh.metrics = metrics
	return sh, nil
}

// Shape calls the HarfBuzz shaper.
func (sh *hbshape) Shape(text io.RuneReader, buf []glyphing.ShapedGlyph, params glyphing.Params) (glyphing.GlyphSequence, error) {
	if text == nil {
		return glyphing.GlyphSequence{}, nil
	}
	var props hb.SegmentProperties
	if params.Language != language.Und {
		props.Language = Lang4HB(params.Language)
	}
	var noScript language.Script
	if params.Script != noScript {
		props.Script = Script4HB(params.Script)
	}
	props.Direction = Direction4HB(params.Direction)
	//
	hbBuf := hb.NewBuffer()
	hbBuf.Props = props
	runes := readAllRunes(text)
	hbBuf.AddRunes(runes, 0, len(runes))
	hbBuf.Shape(sh.font, nil)
	//
	seq := glyphing.GlyphSequence{Glyphs: buf}
	if seq.Glyphs != nil {
		seq.Glyphs = seq.Glyphs[:0]
	}
	var sfntBuf sfnt.Buffer
	for i, ginfo := range hbBuf.Info {
		gpos := hbBuf.Pos[i]
		g := glyphing.ShapedGlyph{
			ClusterID: ginfo.Cluster,
			GID:       uint16(ginfo.Glyph),
			XAdvance:  sh.toPixels26_6(int32(gpos.XAdvance)),
		}
		if ginfo.Cluster < len(runes) {
			g.CodePoint = runes[ginfo.Cluster]
		}
		bounds, _, err := sh.sfont.GlyphBounds(&sfntBuf, sfnt.GlyphIndex(g.GID),
			fixed.I(int(sh.sizePx)), xfont.HintingNone)
		if err == nil {
			g.XBearing = int32(bounds.Min.X)
			g.Width = int32(bounds.Max.X - bounds.Min.X)
		}
		seq.Glyphs = append(seq.Glyphs, g)
		seq.W += g.XAdvance
	}
	return seq, nil
}

// FontExtents reports the font's vertical metrics at the shaper's size.
func (sh *hbshape) FontExtents() glyphing.FontExtents {
	return glyphing.FontExtents{
		Ascender:  int32(sh.metrics.Ascent),
		Descender: -int32(sh.metrics.Descent),
		LineGap:   int32(sh.metrics.Height - sh.metrics.Ascent - sh.metrics.Descent),
	}
}

// toPixels26_6 scales a font-unit measurement to 26.6 pixels.
func (sh *hbshape) toPixels26_6(fontUnits int32) int32 {
	return int32(int64(fontUnits) * int64(sh.sizePx) * 64 / int64(sh.upem))
}

func readAllRunes(text io.RuneReader) []rune {
	var runes []rune
	for {
		r, _, err := text.ReadRune()
		if err != nil {
			break
		}
		runes = append(runes, r)
	}
	return runes
}

var _ glyphing.Shaper = &hbshape{}
