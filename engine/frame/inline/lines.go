package inline

import (
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/glyphing"
)

// Line splitting is greedy, left to right. A glyph wraps to a new line
// when its ink would exceed the available width, provided the current
// line already holds at least one element and the glyph has positive ink
// width (trailing whitespace hangs).
//
// Vertical metrics derive from the font extents:
//
//	top height    = ascender + ⌊line gap / 2⌋ + line gap mod 2
//	bottom height = −descender + ⌊line gap / 2⌋
//
// Each line's baseline sits at the previous line's bottom plus the
// line's maximum top height; embedded inline-blocks raise the top
// height to their margin-box height where that is larger.

type lineMetrics struct {
	topHeight    dimen.DU
	bottomHeight dimen.DU
}

func metricsFromFont(ext glyphing.FontExtents) lineMetrics {
	asc := dimen.From26_6(ext.Ascender)
	desc := dimen.From26_6(ext.Descender)
	gap := dimen.From26_6(ext.LineGap)
	return lineMetrics{
		topHeight:    asc + gap/2 + gap%2,
		bottomHeight: -desc + gap/2,
	}
}

// BreakLines splits the glyph stream into line boxes against an available
// inline size. It finalizes Lines, Height and LongestLine and returns the
// total height.
func (ifc *IFC) BreakLines(available dimen.DU, ext glyphing.FontExtents) dimen.DU {
	ifc.Lines = ifc.Lines[:0]
	ifc.Height = 0
	ifc.LongestLine = 0
	if len(ifc.Glyphs) == 0 {
		return 0
	}
	fm := metricsFromFont(ext)
	baseline := dimen.Zero

	var cursor dimen.DU
	lineBegin := 0
	maxTop := fm.topHeight
	maxBottom := fm.bottomHeight
	hasElement := false
	var firstBox uint16
	var boxStack []uint16
	openBox := func() uint16 {
		if len(boxStack) == 0 {
			return 0
		}
		return boxStack[len(boxStack)-1]
	}

	flush := func(end int) {
		baseline += maxTop
		ifc.Lines = append(ifc.Lines, LineBox{
			BaselineY:      baseline,
			GlyphBegin:     lineBegin,
			GlyphEnd:       end,
			FirstInlineBox: firstBox,
		})
		ifc.LongestLine = dimen.Max(ifc.LongestLine, cursor)
		ifc.Height = baseline + maxBottom
		baseline = ifc.Height // the next line starts below this line's bottom
		lineBegin = end
		cursor = 0
		maxTop = fm.topHeight
		maxBottom = fm.bottomHeight
		hasElement = false
		firstBox = openBox()
	}

	for i := 0; i < len(ifc.Glyphs); i++ {
		m := ifc.Metrics[i]
		if ifc.Glyphs[i] == 0 {
			sp := DecodeSpecial(ifc.Glyphs[i+1])
			switch sp.Kind {
			case SpecialLineBreak:
				i++
				flush(i + 1)
				continue
			case SpecialBoxStart:
				boxStack = append(boxStack, sp.Data)
			case SpecialBoxEnd:
				if len(boxStack) > 0 {
					boxStack = boxStack[:len(boxStack)-1]
				}
			case SpecialInlineBlock:
				if hasElement && m.Width > 0 && cursor+m.Offset+m.Width > available {
					flush(i)
				}
				if h, ok := ifc.blockHeights[i]; ok && h > maxTop {
					maxTop = h
				}
				hasElement = true
			case SpecialZeroGlyph:
				if hasElement && m.Width > 0 && cursor+m.Offset+m.Width > available {
					flush(i)
				}
				hasElement = true
			}
			cursor += m.Advance
			i++
			continue
		}
		if hasElement && m.Width > 0 && cursor+m.Offset+m.Width > available {
			flush(i)
		}
		hasElement = true
		cursor += m.Advance
	}
	if lineBegin < len(ifc.Glyphs) {
		flush(len(ifc.Glyphs))
	}
	return ifc.Height
}
