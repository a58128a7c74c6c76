package layout

import (
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
	"github.com/npillmayer/visfmt/engine/frame"
	"github.com/npillmayer/visfmt/engine/frame/boxtree"
)

// slimUsed is the part of a block's used sizes a flow frame keeps on the
// stack: the clamped inline size, the block size or auto, its bounds, and
// the trailing block-axis edges needed to finalize the border size.
type slimUsed struct {
	inlineSize dimen.DU
	blockSize  dimen.DU
	blockAuto  bool
	minBlock   dimen.DU
	maxBlock   dimen.DU
	edgesBelow dimen.DU // padding-bottom + border-bottom
}

// flowFrame is one open block of the iterative flow DFS.
type flowFrame struct {
	element    dom.NodeIndex
	block      boxtree.BlockIndex
	skip       boxtree.BlockIndex
	used       slimUsed
	autoHeight dimen.DU
	cb         containing // containing block for the children
	child      dom.NodeIndex
	hasChild   bool
	positioned bool
}

// layoutFlow lays out the flow rooted in element e into a fresh subtree.
// The element's styles must be current on the style computer. distribute
// controls whether the root block's leftover inline space is distributed
// into auto margins (normal flow) or auto margins are used as 0
// (shrink-to-fit contexts, CSS 2.2 §10.3.9).
//
// The returned used sizes are the root block's, for later margin
// re-adjustment by the shrink-to-fit engine.
func (l *layouter) layoutFlow(rootE dom.NodeIndex, cb containing, atRoot, distribute bool) (boxtree.SubtreeID, frame.BlockUsedSizes, error) {
	stID, st := l.boxes.NewSubtree()
	var stack []flowFrame
	var rootUsed frame.BlockUsedSizes

	openBlock := func(e dom.NodeIndex, cb containing, isRoot bool) error {
		s := l.styles.Styles()
		spec := frame.ComputedSizesOf(s)
		used := frame.BlockUsedSizes{}
		var err error
		if isRoot && !distribute {
			err = frame.SolveEdges(spec, cb.w, &used)
			if err == nil && used.IsAuto(frame.FieldInlineSize) {
				err = core.Error(core.EINTERNAL, "flow root with auto width outside shrink-to-fit")
			}
		} else {
			err = frame.SolveWidths(spec, cb.w, &used)
		}
		if err != nil {
			return err
		}
		if err = frame.SolveHeights(spec, cb.w, cb.h, &used); err != nil {
			return err
		}
		inx, err := st.AppendBlock(boxtree.KindBlock, 0)
		if err != nil {
			return err
		}
		l.writeBlockPart1(st, inx, &used, s, cb)
		ref := boxtree.BlockRef{Subtree: stID, Index: inx}
		if id, has := l.boxes.Stacking.Push(stackingInfoFor(s, isRoot && atRoot), ref); has {
			st.SetStackingContext(inx, id)
		}
		positioned := s.Box.Position != style.PositionStatic
		if positioned {
			l.posacb.push(ref)
		}
		l.mapElementToBox(e, boxtree.GeneratedBox{Kind: boxtree.GenBlockBox, Block: ref})
		if err = l.styles.PushElement(); err != nil {
			return err
		}
		if isRoot {
			rootUsed = used
		}
		fr := flowFrame{
			element:    e,
			block:      inx,
			skip:       1,
			used:       slimOf(&used),
			cb:         containing{w: used.InlineSize, h: blockSizeOf(&used)},
			positioned: positioned,
		}
		fr.child, fr.hasChild = l.tree.FirstChild(e)
		stack = append(stack, fr)
		return nil
	}

	if err := openBlock(rootE, cb, true); err != nil {
		return stID, rootUsed, err
	}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.hasChild {
			// part 2: all children processed, finalize the block
			h := top.used.blockSize
			if top.used.blockAuto {
				h = top.autoHeight
			}
			h = dimen.Clamp(h, top.used.minBlock, top.used.maxBlock)
			off := &st.Offsets[top.block]
			off.ContentSize.H = h
			off.BorderSize.H = off.ContentPos.Y + h + top.used.edgesBelow
			st.SetSkip(top.block, top.skip)
			l.styles.PopElement()
			l.boxes.Stacking.Pop()
			if top.positioned {
				l.posacb.pop()
			}
			finished := *top
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				if finished.block == 0 {
					rootUsed.Set(frame.FieldBlockSize, h)
				}
				break
			}
			parent := &stack[len(stack)-1]
			parent.skip += finished.skip
			if err := addBlockToFlow(st, finished.block, &parent.autoHeight); err != nil {
				return stID, rootUsed, err
			}
			parent.child, parent.hasChild = l.tree.NextSibling(parent.element, finished.element)
			continue
		}
		e := top.child
		if l.tree.Category(e) == dom.Text {
			if err := l.flowInlineRun(st, stID, top, e); err != nil {
				return stID, rootUsed, err
			}
			continue
		}
		l.styles.SetCurrentElement(e)
		s := l.styles.Styles()
		if err := checkSupportedInFlow(l, s); err != nil {
			return stID, rootUsed, err
		}
		switch frame.EffectiveDisplay(s.Box.Display, false) {
		case style.DisplayNone:
			top.child, top.hasChild = l.tree.NextSibling(top.element, e)
		case style.DisplayBlock:
			if err := openBlock(e, top.cb, false); err != nil {
				return stID, rootUsed, err
			}
		default: // inline and inline-block content starts an IFC
			if err := l.flowInlineRun(st, stID, top, e); err != nil {
				return stID, rootUsed, err
			}
		}
	}
	return stID, rootUsed, nil
}

// flowInlineRun hands a run of inline-level siblings to the IFC builder
// and accounts the resulting container in the current frame.
func (l *layouter) flowInlineRun(st *boxtree.Subtree, stID boxtree.SubtreeID, top *flowFrame, e dom.NodeIndex) error {
	run, err := l.buildIFC(st, stID, top.element, e, top.cb)
	if err != nil {
		return err
	}
	off := &st.Offsets[run.container]
	off.ContentSize.W = top.cb.w
	off.BorderSize.W = top.cb.w
	off.BorderPos.Y = top.autoHeight
	var ok bool
	if top.autoHeight, ok = dimen.Add(top.autoHeight, run.height); !ok {
		return core.ErrorWithCode(nil, core.EOVERFLOW)
	}
	top.skip += run.skip
	top.child, top.hasChild = run.next, run.hasNext
	return nil
}

// checkSupportedInFlow registers positioned elements before rejecting the
// positioning schemes this engine does not lay out.
func checkSupportedInFlow(l *layouter, s *style.Styles) error {
	switch s.Box.Position {
	case style.PositionAbsolute, style.PositionFixed, style.PositionSticky:
		l.posacb.registerAbsolute()
	}
	return checkSupported(s)
}

// writeBlockPart1 stages the geometry known before the children are laid
// out: everything except the final skip and the content height.
func (l *layouter) writeBlockPart1(st *boxtree.Subtree, inx boxtree.BlockIndex, used *frame.BlockUsedSizes, s *style.Styles, cb containing) {
	off := &st.Offsets[inx]
	off.BorderPos = dimen.Point{X: used.MarginInlineStart, Y: used.MarginBlockStart}
	off.ContentPos = dimen.Point{
		X: used.BorderInlineStart + used.PaddingInlineStart,
		Y: used.BorderBlockStart + used.PaddingBlockStart,
	}
	off.ContentSize.W = used.InlineSize
	off.BorderSize.W = off.ContentPos.X + used.InlineSize + used.PaddingInlineEnd + used.BorderInlineEnd
	st.Borders[inx] = frame.Borders{
		Left: used.BorderInlineStart, Right: used.BorderInlineEnd,
		Top: used.BorderBlockStart, Bottom: used.BorderBlockEnd,
	}
	st.Margins[inx] = frame.Margins{
		Left: used.MarginInlineStart, Right: used.MarginInlineEnd,
		Top: used.MarginBlockStart, Bottom: used.MarginBlockEnd,
	}
	st.BorderCols[inx] = frame.BorderColors{
		Left: s.BorderColors.Left, Right: s.BorderColors.Right,
		Top: s.BorderColors.Top, Bottom: s.BorderColors.Bottom,
	}
	st.Backgrounds[inx] = frame.Background{Color: s.Background.Color}
	if s.Box.Position == style.PositionRelative {
		st.Insets[inx] = frame.SolveInsets(s.Insets, cb.w, heightBasis(cb.h))
	}
}

// addBlockToFlow stacks a finalized block below its preceding siblings:
// the staged border position carries the top margin, the block shifts
// down by the accumulated flow height, and the flow height advances by
// the block's margin-box height.
func addBlockToFlow(st *boxtree.Subtree, b boxtree.BlockIndex, autoHeight *dimen.DU) error {
	off := &st.Offsets[b]
	marginTop := off.BorderPos.Y
	off.BorderPos.Y += *autoHeight
	advance := off.BorderSize.H + marginTop + st.Margins[b].Bottom
	h, ok := dimen.Add(*autoHeight, advance)
	if !ok {
		return core.ErrorWithCode(nil, core.EOVERFLOW)
	}
	*autoHeight = h
	return nil
}

func slimOf(used *frame.BlockUsedSizes) slimUsed {
	bs, haveBS := used.Get(frame.FieldBlockSize)
	return slimUsed{
		inlineSize: used.InlineSize,
		blockSize:  bs,
		blockAuto:  !haveBS,
		minBlock:   used.MinBlockSize,
		maxBlock:   used.MaxBlockSize,
		edgesBelow: used.PaddingBlockEnd + used.BorderBlockEnd,
	}
}

func blockSizeOf(used *frame.BlockUsedSizes) css.DimenT {
	if bs, ok := used.Get(frame.FieldBlockSize); ok {
		return css.SomeDimen(bs)
	}
	return css.Dimen()
}

// mapElementToBox records the principal box of an element.
func (l *layouter) mapElementToBox(e dom.NodeIndex, gb boxtree.GeneratedBox) {
	l.boxes.MapElementToBox(e, gb)
}
