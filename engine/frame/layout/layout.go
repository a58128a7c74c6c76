package layout

// Invaluable:
// https://developer.mozilla.org/en-US/docs/Web/CSS/Visual_formatting_model

import (
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
	"github.com/npillmayer/visfmt/engine/frame"
	"github.com/npillmayer/visfmt/engine/frame/boxtree"
	"github.com/npillmayer/visfmt/engine/glyphing"
)

// View is the viewport: it provides the initial containing block.
type View struct {
	Width, Height dimen.DU
}

// containing describes the containing block children resolve against:
// a definite inline size and a block size which may be unknown.
type containing struct {
	w dimen.DU
	h css.DimenT
}

type layouter struct {
	tree   *dom.Tree
	styles *style.Computer
	shaper glyphing.Shaper
	boxes  *boxtree.Tree
	view   View
	posacb *positionedAncestors
}

// Layout formats an element tree into a box tree. decls holds the
// cascaded values won by the upstream cascade; shaper realizes the text
// run measurements.
//
// Layout is fail-fast: on error the returned tree is nil and any
// partially built storage is discarded.
func Layout(tree *dom.Tree, decls *style.Declarations, view View, shaper glyphing.Shaper) (*boxtree.Tree, error) {
	if tree == nil || tree.Size() == 0 {
		return nil, core.Error(core.EINVALID, "no element tree to lay out")
	}
	l := &layouter{
		tree:   tree,
		styles: style.NewComputer(tree, decls),
		shaper: shaper,
		boxes:  boxtree.NewTree(),
		view:   view,
		posacb: &positionedAncestors{},
	}
	root := tree.Root()
	l.styles.SetCurrentElement(root)
	s := l.styles.Styles()
	disp := frame.EffectiveDisplay(s.Box.Display, true)
	if disp == style.DisplayNone {
		tracer().Infof("root element has display none, layout is empty")
		return l.boxes, nil
	}
	if disp != s.Box.Display {
		bs := s.Box
		bs.Display = disp
		l.styles.SetBoxStyle(bs)
	}
	stID, _, err := l.layoutFlow(root, containing{w: view.Width, h: css.SomeDimen(view.Height)}, true, true)
	if err != nil {
		return nil, err
	}
	l.boxes.Root = stID
	tracer().Infof("layout produced %d subtrees, %d stacking contexts",
		l.boxes.SubtreeCount(), l.boxes.Stacking.Size())
	return l.boxes, nil
}

// stackingInfoFor derives stacking participation from position and
// z-index. A relatively positioned box with z-index auto takes part in
// paint order but cannot host child contexts.
func stackingInfoFor(s *style.Styles, atRoot bool) boxtree.StackingInfo {
	if atRoot {
		return boxtree.ParentContext(s.ZIndex.Unwrap())
	}
	if s.Box.Position == style.PositionRelative {
		if s.ZIndex.IsAuto() {
			return boxtree.NonParentContext(0)
		}
		return boxtree.ParentContext(s.ZIndex.Unwrap())
	}
	return boxtree.NoContext()
}

// checkSupported rejects element styles the engine has no layout for.
func checkSupported(s *style.Styles) error {
	if s.Box.Float != style.FloatNone {
		return core.Unsupported("float layout")
	}
	switch s.Box.Position {
	case style.PositionAbsolute:
		return core.Unsupported("absolute positioning")
	case style.PositionFixed:
		return core.Unsupported("fixed positioning")
	case style.PositionSticky:
		return core.Unsupported("sticky positioning")
	}
	return nil
}

func heightBasis(h css.DimenT) dimen.DU {
	if h.IsAbsolute() {
		return h.Unwrap()
	}
	return 0
}
