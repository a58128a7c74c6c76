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

// The shrink-to-fit engine sizes blocks whose context supplies only an
// available width. It runs in two phases: phase 1 builds an object tree
// of width-unknown blocks bottom-up, laying out width-known children and
// inline runs immediately into isolated subtrees; phase 2 realizes the
// object tree top-down into the destination subtree, splicing the
// pre-built subtrees through proxies.

type objTag uint8

const (
	objFlowSTF    objTag = iota // width still unknown, realized in phase 2
	objFlowNormal               // width known, already laid out in isolation
	objIFC                      // inline run, already line-split in isolation
)

// objNode is one entry of the shrink-to-fit object tree, stored
// skip-encoded in pre-order.
type objNode struct {
	skip    int
	tag     objTag
	element dom.NodeIndex
	// objFlowSTF
	used   frame.BlockUsedSizes
	styles style.Styles
	scID   boxtree.StackingID
	hasSC  bool
	// objFlowNormal and objIFC
	subtree  boxtree.SubtreeID
	rootUsed frame.BlockUsedSizes
	outerW   dimen.DU
	height   dimen.DU
	ifcInx   uint16
}

// shrinkToFit lays out element e (styles current) against an available
// width, returning the isolated subtree holding its box and the root's
// used sizes. Blocks with a definite inline size bypass the two-phase
// algorithm and run ordinary flow layout, which makes their geometry
// independent of the invoking context.
func (l *layouter) shrinkToFit(e dom.NodeIndex, cb containing) (boxtree.SubtreeID, frame.BlockUsedSizes, error) {
	if !l.styles.Styles().Width.Size.IsAuto() {
		return l.layoutFlow(e, cb, false, false)
	}
	var ot []objNode
	if _, err := l.stfBuild(&ot, e, cb); err != nil {
		return 0, frame.BlockUsedSizes{}, err
	}
	return l.stfRealize(ot)
}

// stfBuild is phase 1: it recursively builds the object tree below an
// auto-width block and returns the block's outer width. The block's inline
// size is the max of its children's outer widths clamped to its min/max
// bounds; the outer width adds the block's own borders, paddings and margins.
func (l *layouter) stfBuild(ot *[]objNode, e dom.NodeIndex, cb containing) (dimen.DU, error) {
	s := l.styles.Styles()
	spec := frame.ComputedSizesOf(s)
	used := frame.BlockUsedSizes{}
	if err := frame.SolveEdges(spec, cb.w, &used); err != nil {
		return 0, err
	}
	if err := frame.SolveHeights(spec, cb.w, cb.h, &used); err != nil {
		return 0, err
	}
	nodeInx := len(*ot)
	*ot = append(*ot, objNode{skip: 1, tag: objFlowSTF, element: e, used: used, styles: *s})
	// the stacking context exists before its block does; phase 2 patches
	// the block reference in
	if id, has := l.boxes.Stacking.Push(stackingInfoFor(s, false), boxtree.BlockRef{}); has {
		(*ot)[nodeInx].scID = id
		(*ot)[nodeInx].hasSC = true
	}
	if err := l.styles.PushElement(); err != nil {
		return 0, err
	}
	childAvail := dimen.Max(0, cb.w-used.EdgesInline()-used.MarginInlineStart-used.MarginInlineEnd)
	childCB := containing{w: childAvail, h: css.Dimen()}
	autoW := dimen.Zero
	//
	c, ok := l.tree.FirstChild(e)
	for ok {
		if l.tree.Category(c) == dom.Text {
			next, hasNext, err := l.stfInlineRun(ot, e, c, childCB, &autoW)
			if err != nil {
				return 0, err
			}
			c, ok = next, hasNext
			continue
		}
		l.styles.SetCurrentElement(c)
		cs := l.styles.Styles()
		if err := checkSupportedInFlow(l, cs); err != nil {
			return 0, err
		}
		switch frame.EffectiveDisplay(cs.Box.Display, false) {
		case style.DisplayNone:
			// no box
		case style.DisplayBlock:
			if cs.Width.Size.IsAuto() {
				outer, err := l.stfBuild(ot, c, childCB)
				if err != nil {
					return 0, err
				}
				autoW = dimen.Max(autoW, outer)
			} else {
				// a definite width stops the shrink-to-fit propagation:
				// the child contributes only its full outer width
				subID, rootUsed, err := l.layoutFlow(c, childCB, false, false)
				if err != nil {
					return 0, err
				}
				outer := rootUsed.OuterInlineSize()
				*ot = append(*ot, objNode{
					skip: 1, tag: objFlowNormal, element: c,
					subtree: subID, rootUsed: rootUsed, outerW: outer,
				})
				autoW = dimen.Max(autoW, outer)
			}
		default:
			next, hasNext, err := l.stfInlineRun(ot, e, c, childCB, &autoW)
			if err != nil {
				return 0, err
			}
			c, ok = next, hasNext
			continue
		}
		c, ok = l.tree.NextSibling(e, c)
	}
	//
	l.styles.PopElement()
	l.boxes.Stacking.Pop()
	node := &(*ot)[nodeInx]
	node.used.Set(frame.FieldInlineSize,
		dimen.Clamp(autoW, used.MinInlineSize, used.MaxInlineSize))
	node.skip = len(*ot) - nodeInx
	return node.used.OuterInlineSize(), nil
}

// stfInlineRun lays an inline run into an isolated subtree and appends
// its object node. The run's intrinsic width is its longest line box.
func (l *layouter) stfInlineRun(ot *[]objNode, parent, first dom.NodeIndex, cb containing, autoW *dimen.DU) (dom.NodeIndex, bool, error) {
	subID, sub := l.boxes.NewSubtree()
	run, err := l.buildIFC(sub, subID, parent, first, cb)
	if err != nil {
		return 0, false, err
	}
	*ot = append(*ot, objNode{
		skip: 1, tag: objIFC,
		subtree: subID, height: run.height, outerW: run.longest, ifcInx: run.ifcInx,
	})
	*autoW = dimen.Max(*autoW, run.longest)
	return run.next, run.hasNext, nil
}

// stfFrame is one open block during phase 2 realization.
type stfFrame struct {
	end        int // one past the node range of this block
	block      boxtree.BlockIndex
	skip       boxtree.BlockIndex
	autoHeight dimen.DU
	W          dimen.DU // containing width for the children
	used       frame.BlockUsedSizes
}

// stfRealize is phase 2: a DFS over the object tree emitting real blocks
// with the widths determined in phase 1 into a fresh destination subtree.
func (l *layouter) stfRealize(ot []objNode) (boxtree.SubtreeID, frame.BlockUsedSizes, error) {
	stID, st := l.boxes.NewSubtree()
	var stack []stfFrame
	var rootUsed frame.BlockUsedSizes
	// the root's outer width doubles as its containing width: margins
	// then keep their values and auto margins resolve to 0
	rootW := ot[0].used.OuterInlineSize()

	for i := 0; i < len(ot); {
		n := &ot[i]
		W := rootW
		var parent *stfFrame
		if len(stack) > 0 {
			parent = &stack[len(stack)-1]
			W = parent.W
		}
		switch n.tag {
		case objFlowSTF:
			frame.AdjustInlineMargins(&n.used, W)
			inx, err := st.AppendBlock(boxtree.KindBlock, 0)
			if err != nil {
				return stID, rootUsed, err
			}
			l.writeBlockPart1(st, inx, &n.used, &n.styles, containing{w: W, h: css.Dimen()})
			ref := boxtree.BlockRef{Subtree: stID, Index: inx}
			if n.hasSC {
				l.boxes.Stacking.Fixup(n.scID, ref)
				st.SetStackingContext(inx, n.scID)
			}
			l.mapElementToBox(n.element, boxtree.GeneratedBox{Kind: boxtree.GenBlockBox, Block: ref})
			stack = append(stack, stfFrame{
				end: i + n.skip, block: inx, skip: 1,
				W: n.used.InlineSize, used: n.used,
			})
		case objFlowNormal:
			if _, err := st.AppendBlock(boxtree.KindSubtreeProxy, uint16(n.subtree)); err != nil {
				return stID, rootUsed, err
			}
			parent.skip++
			tgt := l.boxes.Subtree(n.subtree)
			frame.AdjustInlineMargins(&n.rootUsed, W)
			tgt.Margins[0].Left = n.rootUsed.MarginInlineStart
			tgt.Margins[0].Right = n.rootUsed.MarginInlineEnd
			tgt.Offsets[0].BorderPos.X = n.rootUsed.MarginInlineStart
			if err := addBlockToFlow(tgt, 0, &parent.autoHeight); err != nil {
				return stID, rootUsed, err
			}
		case objIFC:
			if _, err := st.AppendBlock(boxtree.KindSubtreeProxy, uint16(n.subtree)); err != nil {
				return stID, rootUsed, err
			}
			parent.skip++
			tgt := l.boxes.Subtree(n.subtree)
			off := &tgt.Offsets[0]
			off.ContentSize.W = W
			off.BorderSize.W = W
			off.BorderPos.Y = parent.autoHeight
			var ok bool
			if parent.autoHeight, ok = dimen.Add(parent.autoHeight, n.height); !ok {
				return stID, rootUsed, core.ErrorWithCode(nil, core.EOVERFLOW)
			}
		}
		i++
		// close every block whose node range is exhausted
		for len(stack) > 0 && i >= stack[len(stack)-1].end {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			h, haveH := f.used.Get(frame.FieldBlockSize)
			if !haveH {
				h = f.autoHeight
			}
			h = f.used.ClampBlockSize(h)
			off := &st.Offsets[f.block]
			off.ContentSize.H = h
			off.BorderSize.H = off.ContentPos.Y + h + f.used.PaddingBlockEnd + f.used.BorderBlockEnd
			st.SetSkip(f.block, f.skip)
			if len(stack) == 0 {
				rootUsed = f.used
				rootUsed.Set(frame.FieldBlockSize, h)
				continue
			}
			p := &stack[len(stack)-1]
			p.skip += f.skip
			if err := addBlockToFlow(st, f.block, &p.autoHeight); err != nil {
				return stID, rootUsed, err
			}
		}
	}
	return stID, rootUsed, nil
}
