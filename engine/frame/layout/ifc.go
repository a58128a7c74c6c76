package layout

import (
	"strings"

	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/frame"
	"github.com/npillmayer/visfmt/engine/frame/boxtree"
	"github.com/npillmayer/visfmt/engine/frame/inline"
	"github.com/npillmayer/visfmt/engine/glyphing"
)

// ifcRun is the result of building one inline formatting context from a
// run of inline-level siblings.
type ifcRun struct {
	ifcInx    uint16
	container boxtree.BlockIndex
	skip      boxtree.BlockIndex // container skip, inline-block proxies included
	height    dimen.DU
	longest   dimen.DU
	next      dom.NodeIndex // first sibling after the run
	hasNext   bool
}

// buildIFC consumes the longest run of inline-level siblings starting at
// first, building an inline formatting context anchored in a container
// block of subtree st. Inline-blocks are laid out through shrink-to-fit
// before line splitting, so their outer size is known; they join the
// subtree as proxy children of the container.
//
// The container's height is finalized here; the caller sets its widths,
// which differ between normal flow and shrink-to-fit.
func (l *layouter) buildIFC(st *boxtree.Subtree, stID boxtree.SubtreeID, parent, first dom.NodeIndex, cb containing) (ifcRun, error) {
	ifc := inline.New()
	run := ifcRun{ifcInx: l.boxes.AppendIFC(ifc), skip: 1}
	container, err := st.AppendBlock(boxtree.KindIFCContainer, run.ifcInx)
	if err != nil {
		return run, err
	}
	run.container = container
	l.boxes.Stacking.RegisterIFC(run.ifcInx)
	//
	e, ok := first, true
	for ok {
		if l.tree.Category(e) == dom.Element {
			l.styles.SetCurrentElement(e)
			disp := frame.EffectiveDisplay(l.styles.Styles().Box.Display, false)
			if disp == style.DisplayBlock {
				break // run ends, the block goes back to flow layout
			}
		}
		if err := l.appendInlineContent(ifc, st, stID, &run, e, cb); err != nil {
			return run, err
		}
		e, ok = l.tree.NextSibling(parent, e)
	}
	run.next, run.hasNext = e, ok
	//
	run.height = ifc.BreakLines(cb.w, l.shaper.FontExtents())
	run.longest = ifc.LongestLine
	st.SetSkip(container, run.skip)
	off := &st.Offsets[container]
	off.ContentSize.H = run.height
	off.BorderSize.H = run.height
	tracer().Debugf("IFC %d: %d slots, %d lines, height %v",
		run.ifcInx, ifc.Size(), len(ifc.Lines), run.height)
	return run, nil
}

// appendInlineContent appends one inline-level element (or text leaf) to
// the glyph stream, descending into nested inline boxes.
func (l *layouter) appendInlineContent(ifc *inline.IFC, st *boxtree.Subtree, stID boxtree.SubtreeID, run *ifcRun, e dom.NodeIndex, cb containing) error {
	if l.tree.Category(e) == dom.Text {
		if err := l.shapeText(ifc, l.tree.Text(e)); err != nil {
			return err
		}
		l.mapElementToBox(e, boxtree.GeneratedBox{Kind: boxtree.GenText, IFC: run.ifcInx})
		return nil
	}
	l.styles.SetCurrentElement(e)
	s := l.styles.Styles()
	if err := checkSupportedInFlow(l, s); err != nil {
		return err
	}
	switch frame.EffectiveDisplay(s.Box.Display, false) {
	case style.DisplayNone:
		return nil
	case style.DisplayBlock:
		// would need continuation boxes across the inline/block boundary
		return core.Unsupported("block-level box inside inline formatting context")
	case style.DisplayInlineBlock:
		return l.appendInlineBlock(ifc, st, stID, run, e, cb)
	}
	// an inline box wrapping nested inline content
	inx := ifc.StartInlineBox(l.inlineBoxEdges(s, cb.w))
	l.mapElementToBox(e, boxtree.GeneratedBox{Kind: boxtree.GenInlineBox, IFC: run.ifcInx, InlineBox: inx})
	if err := l.styles.PushElement(); err != nil {
		return err
	}
	c, ok := l.tree.FirstChild(e)
	for ok {
		if err := l.appendInlineContent(ifc, st, stID, run, c, cb); err != nil {
			return err
		}
		c, ok = l.tree.NextSibling(e, c)
	}
	l.styles.PopElement()
	ifc.EndInlineBox()
	return nil
}

// appendInlineBlock lays out an inline-block through shrink-to-fit and
// embeds it into the glyph stream via a subtree proxy.
func (l *layouter) appendInlineBlock(ifc *inline.IFC, st *boxtree.Subtree, stID boxtree.SubtreeID, run *ifcRun, e dom.NodeIndex, cb containing) error {
	subID, used, err := l.shrinkToFit(e, cb)
	if err != nil {
		return err
	}
	proxy, err := st.AppendBlock(boxtree.KindSubtreeProxy, uint16(subID))
	if err != nil {
		return err
	}
	run.skip++
	tgt := l.boxes.Subtree(subID)
	outerW := used.OuterInlineSize()
	outerH := tgt.Offsets[0].BorderSize.H + used.MarginBlockStart + used.MarginBlockEnd
	ifc.AppendInlineBlock(uint16(proxy), outerW, outerH)
	tracer().Debugf("inline-block element %d: outer size %v x %v", e, outerW, outerH)
	return nil
}

// inlineBoxEdges resolves the inline-axis edges of an inline box; auto
// margins on inline boxes are used as 0.
func (l *layouter) inlineBoxEdges(s *style.Styles, W dimen.DU) inline.InlineBox {
	box := inline.InlineBox{}
	if v, ok := s.HEdges.PaddingStart.Resolve(W); ok && v >= 0 {
		box.PaddingStart = v
	}
	if v, ok := s.HEdges.PaddingEnd.Resolve(W); ok && v >= 0 {
		box.PaddingEnd = v
	}
	if s.HEdges.BorderStartStyle.IsVisible() {
		if v, ok := s.HEdges.BorderStartWidth.Resolve(W); ok && v >= 0 {
			box.BorderStart = v
		}
	}
	if s.HEdges.BorderEndStyle.IsVisible() {
		if v, ok := s.HEdges.BorderEndWidth.Resolve(W); ok && v >= 0 {
			box.BorderEnd = v
		}
	}
	if v, ok := s.HEdges.MarginStart.Resolve(W); ok {
		box.MarginStart = v
	}
	if v, ok := s.HEdges.MarginEnd.Resolve(W); ok {
		box.MarginEnd = v
	}
	return box
}

// shapeText shapes a normalized text run and appends its glyphs.
func (l *layouter) shapeText(ifc *inline.IFC, raw string) error {
	text := inline.NormalizeWhitespace(inline.ExpandTabs(raw))
	if text == "" {
		return nil
	}
	seq, err := l.shaper.Shape(strings.NewReader(text), nil, glyphing.Params{})
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "text shaping failed")
	}
	for _, g := range seq.Glyphs {
		ifc.AppendGlyph(g.GID, inline.Metrics{
			Offset:  dimen.From26_6(g.XBearing),
			Advance: dimen.From26_6(g.XAdvance),
			Width:   dimen.From26_6(g.Width),
		})
	}
	return nil
}
