package inline

import (
	"strings"

	"github.com/npillmayer/visfmt/core/dimen"
)

// TabSize is the number of character cells a tab advances to.
const TabSize = 8

// Metrics is the per-slot measurement record, in device units.
// Offset is the glyph's left side bearing, Width the ink width. Slots
// holding special markers have zero metrics.
type Metrics struct {
	Offset  dimen.DU
	Advance dimen.DU
	Width   dimen.DU
}

// SpecialKind tags the marker slot following a glyph-index-0 sentinel.
type SpecialKind uint16

const (
	// SpecialZeroGlyph: the text really contains glyph index 0 (.notdef).
	SpecialZeroGlyph SpecialKind = iota
	// SpecialBoxStart opens inline box #data.
	SpecialBoxStart
	// SpecialBoxEnd closes inline box #data.
	SpecialBoxEnd
	// SpecialInlineBlock embeds block #data of the IFC's subtree.
	SpecialInlineBlock
	// SpecialLineBreak forces a line break.
	SpecialLineBreak
)

// Special is a non-glyph event in the glyph stream.
type Special struct {
	Kind SpecialKind
	Data uint16
}

// Encode packs a special marker into one 32-bit glyph slot.
func (sp Special) Encode() uint32 {
	return uint32(sp.Kind)<<16 | uint32(sp.Data)
}

// DecodeSpecial unpacks a marker slot.
func DecodeSpecial(slot uint32) Special {
	return Special{Kind: SpecialKind(slot >> 16), Data: uint16(slot)}
}

// InlineBox holds the used edge values of one inline box, inline axis
// only; the block axis of inline boxes derives from line metrics.
type InlineBox struct {
	PaddingStart, PaddingEnd dimen.DU
	BorderStart, BorderEnd   dimen.DU
	MarginStart, MarginEnd   dimen.DU
}

// LineBox is one line of an IFC after line splitting.
type LineBox struct {
	BaselineY      dimen.DU // baseline offset from the IFC's top
	GlyphBegin     int      // first slot of the line
	GlyphEnd       int      // one past the last slot
	FirstInlineBox uint16   // inline box open at the line's start
}

// IFC is one inline formatting context.
type IFC struct {
	Glyphs      []uint32
	Metrics     []Metrics
	Lines       []LineBox
	InlineBoxes []InlineBox
	Height      dimen.DU // total height after line splitting
	LongestLine dimen.DU // length of the longest line box

	// margin-box heights of embedded inline blocks, keyed by the slot
	// index of their marker
	blockHeights map[int]dimen.DU
	openBoxes    []uint16
}

// New creates an empty IFC with its root inline box: index 0, no edges.
func New() *IFC {
	return &IFC{
		InlineBoxes:  []InlineBox{{}},
		blockHeights: make(map[int]dimen.DU),
	}
}

// Size returns the number of glyph slots (markers included).
func (ifc *IFC) Size() int {
	return len(ifc.Glyphs)
}

func (ifc *IFC) appendSlot(slot uint32, m Metrics) {
	ifc.Glyphs = append(ifc.Glyphs, slot)
	ifc.Metrics = append(ifc.Metrics, m)
}

func (ifc *IFC) appendSpecial(sp Special, m Metrics) int {
	ifc.appendSlot(0, m)
	ifc.appendSlot(sp.Encode(), Metrics{})
	return len(ifc.Glyphs) - 2
}

// AppendGlyph appends a glyph with its metrics. Glyph index 0 is escaped
// through a ZeroGlyph marker, keeping the stream trivially traversable.
func (ifc *IFC) AppendGlyph(gid uint16, m Metrics) {
	if gid == 0 {
		ifc.appendSpecial(Special{Kind: SpecialZeroGlyph}, m)
		return
	}
	ifc.appendSlot(uint32(gid), m)
}

// StartInlineBox opens a new inline box with the given used edges and
// returns its index. The box start consumes the leading margin, border
// and padding as its advance.
func (ifc *IFC) StartInlineBox(box InlineBox) uint16 {
	ifc.InlineBoxes = append(ifc.InlineBoxes, box)
	inx := uint16(len(ifc.InlineBoxes) - 1)
	adv := box.MarginStart + box.BorderStart + box.PaddingStart
	ifc.appendSpecial(Special{Kind: SpecialBoxStart, Data: inx}, Metrics{Advance: adv})
	ifc.openBoxes = append(ifc.openBoxes, inx)
	return inx
}

// EndInlineBox closes the innermost open inline box.
func (ifc *IFC) EndInlineBox() {
	if len(ifc.openBoxes) == 0 {
		tracer().Errorf("inline box end without start")
		return
	}
	inx := ifc.openBoxes[len(ifc.openBoxes)-1]
	ifc.openBoxes = ifc.openBoxes[:len(ifc.openBoxes)-1]
	box := ifc.InlineBoxes[inx]
	adv := box.MarginEnd + box.BorderEnd + box.PaddingEnd
	ifc.appendSpecial(Special{Kind: SpecialBoxEnd, Data: inx}, Metrics{Advance: adv})
}

// AppendInlineBlock embeds an already laid out inline-block. outerWidth
// and outerHeight are the block's margin-box dimensions; blockInx is its
// index within the subtree the IFC belongs to.
func (ifc *IFC) AppendInlineBlock(blockInx uint16, outerWidth, outerHeight dimen.DU) {
	slot := ifc.appendSpecial(Special{Kind: SpecialInlineBlock, Data: blockInx},
		Metrics{Advance: outerWidth, Width: outerWidth})
	ifc.blockHeights[slot] = outerHeight
}

// AppendLineBreak forces a line break at the current position.
func (ifc *IFC) AppendLineBreak() {
	ifc.appendSpecial(Special{Kind: SpecialLineBreak}, Metrics{})
}

// --- Whitespace ------------------------------------------------------------

// ExpandTabs replaces each tab by spaces up to the next TabSize tab stop.
func ExpandTabs(text string) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	var sb strings.Builder
	col := 0
	for _, r := range text {
		if r == '\t' {
			n := TabSize - col%TabSize
			for i := 0; i < n; i++ {
				sb.WriteByte(' ')
			}
			col += n
			continue
		}
		sb.WriteRune(r)
		if r == '\n' {
			col = 0
		} else {
			col++
		}
	}
	return sb.String()
}

// NormalizeWhitespace collapses runs of whitespace (spaces, tabs and line
// ends) into single spaces, dropping leading whitespace.
func NormalizeWhitespace(text string) string {
	var sb strings.Builder
	space := false
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			space = true
		default:
			if space && sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			space = false
			sb.WriteRune(r)
		}
	}
	if space && sb.Len() > 0 {
		sb.WriteByte(' ')
	}
	return sb.String()
}
