package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
	"github.com/npillmayer/visfmt/engine/frame/boxtree"
	"github.com/npillmayer/visfmt/engine/glyphing/monospace"
	"github.com/stretchr/testify/assert"
)

// Tests shape text with a monospace shaper using 8px cells: every
// character advances 16 device units and lines are 14 device units high.

func block(d *style.Declarations, e dom.NodeIndex) {
	d.SetBoxStyle(e, style.BoxStyle{Display: style.Set(style.DisplayBlock)})
}

func width(d *style.Declarations, e dom.NodeIndex, w css.DimenT) {
	d.SetWidth(e, style.ContentSize{Size: style.Set(w)})
}

func height(d *style.Declarations, e dom.NodeIndex, h css.DimenT) {
	d.SetHeight(e, style.ContentSize{Size: style.Set(h)})
}

func doLayout(t *testing.T, tree *dom.Tree, decls *style.Declarations, view View) *boxtree.Tree {
	t.Helper()
	boxes, err := Layout(tree, decls, view, monospace.Shaper(8, nil))
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	return boxes
}

func TestS1AutoMarginsCenterChild(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	child := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	block(decls, child)
	width(decls, child, css.SomeDimen(200))
	height(decls, child, css.SomeDimen(100))
	decls.SetHorizontalEdges(child, style.Edges{
		MarginStart: style.Set(css.Auto()),
		MarginEnd:   style.Set(css.Auto()),
	})
	//
	boxes := doLayout(t, tree, decls, View{Width: 800, Height: 600})
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, 2, st.Size())
	assert.Equal(t, dimen.Point{X: 300, Y: 0}, st.Offsets[1].BorderPos)
	assert.Equal(t, dimen.DU(200), st.Offsets[1].BorderSize.W)
	assert.Equal(t, dimen.DU(100), st.Offsets[1].BorderSize.H)
	// root auto-height equals the child's margin-box height
	assert.Equal(t, dimen.DU(100), st.Offsets[0].ContentSize.H)
}

func TestS2AutoWidthTakesRest(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	child := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	block(decls, child)
	decls.SetHorizontalEdges(child, style.Edges{
		MarginStart:      style.Set(css.SomeDimen(10)),
		MarginEnd:        style.Set(css.SomeDimen(20)),
		BorderStartStyle: style.Set(style.BorderSolid),
		BorderEndStyle:   style.Set(style.BorderSolid),
		BorderStartWidth: style.Set(css.SomeDimen(5)),
		BorderEndWidth:   style.Set(css.SomeDimen(5)),
		PaddingStart:     style.Set(css.SomeDimen(15)),
		PaddingEnd:       style.Set(css.SomeDimen(15)),
	})
	//
	boxes := doLayout(t, tree, decls, View{Width: 400, Height: 600})
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, dimen.DU(330), st.Offsets[1].ContentSize.W)
	assert.Equal(t, dimen.DU(10), st.Offsets[1].BorderPos.X)
	assert.Equal(t, dimen.DU(370), st.Offsets[1].BorderSize.W)
}

func TestS3MinWidthClampWithAutoMargins(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	child := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	block(decls, child)
	decls.SetWidth(child, style.ContentSize{
		Size: style.Set(css.SomeDimen(200)),
		Min:  style.Set(css.SomeDimen(300)),
		Max:  style.Set(css.SomeDimen(400)),
	})
	decls.SetHorizontalEdges(child, style.Edges{
		MarginStart: style.Set(css.Auto()),
		MarginEnd:   style.Set(css.Auto()),
	})
	//
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 600})
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, dimen.DU(300), st.Offsets[1].ContentSize.W)
	assert.Equal(t, dimen.DU(100), st.Margins[1].Left)
	assert.Equal(t, dimen.DU(100), st.Margins[1].Right)
}

func TestS4ShrinkToFit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	ib := b.Open() // the inline-block
	b.Text("hello")
	inner := b.Open() // block child with definite width
	b.Close()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	decls.SetBoxStyle(ib, style.BoxStyle{Display: style.Set(style.DisplayInlineBlock)})
	block(decls, inner)
	width(decls, inner, css.SomeDimen(150))
	height(decls, inner, css.SomeDimen(40))
	//
	boxes := doLayout(t, tree, decls, View{Width: 200, Height: 600})
	gb, ok := boxes.GeneratedBoxOf(ib)
	assert.True(t, ok)
	assert.Equal(t, boxtree.GenBlockBox, gb.Kind)
	tgt := boxes.Subtree(gb.Block.Subtree)
	// intrinsic width: max("hello" = 5*16, inner block 150)
	assert.Equal(t, dimen.DU(150), tgt.Offsets[gb.Block.Index].ContentSize.W)
	// height: one 14-unit text line plus the 40-unit block
	assert.Equal(t, dimen.DU(54), tgt.Offsets[gb.Block.Index].ContentSize.H)
}

func TestS4ShrinkToFitTextWins(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	ib := b.Open()
	b.Text("hello world") // 11 chars = 176 units
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	decls.SetBoxStyle(ib, style.BoxStyle{Display: style.Set(style.DisplayInlineBlock)})
	//
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 600})
	gb, _ := boxes.GeneratedBoxOf(ib)
	tgt := boxes.Subtree(gb.Block.Subtree)
	assert.Equal(t, dimen.DU(176), tgt.Offsets[gb.Block.Index].ContentSize.W)
}

func TestS5StackingOrder(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	var children [3]dom.NodeIndex
	for i := 0; i < 3; i++ {
		children[i] = b.Open()
		b.Close()
	}
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	zs := []int32{1, -1, 2}
	for i, c := range children {
		block(decls, c)
		decls.SetBoxStyle(c, style.BoxStyle{
			Display:  style.Set(style.DisplayBlock),
			Position: style.Set(style.PositionRelative),
		})
		decls.SetZIndex(c, style.ZIndex{Z: style.Set(style.ZInt(zs[i]))})
	}
	//
	boxes := doLayout(t, tree, decls, View{Width: 400, Height: 600})
	var order []int32
	var blocks []boxtree.BlockIndex
	boxes.Stacking.Walk(func(ctx boxtree.Context, depth int) {
		if depth == 1 {
			order = append(order, ctx.ZIndex)
			blocks = append(blocks, ctx.Ref.Index)
		}
	})
	assert.Equal(t, []int32{-1, 1, 2}, order)
	// paint order of the block boxes follows z-index, not document order
	assert.Equal(t, []boxtree.BlockIndex{2, 1, 3}, blocks)
}

func TestS6AutoHeightChain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	childA := b.Open()
	b.Close()
	childB := b.Open()
	g1 := b.Open()
	b.Close()
	g2 := b.Open()
	b.Close()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	for _, e := range []dom.NodeIndex{root, childA, childB, g1, g2} {
		block(decls, e)
	}
	height(decls, childA, css.SomeDimen(50))
	height(decls, g1, css.SomeDimen(20))
	height(decls, g2, css.SomeDimen(20))
	//
	boxes := doLayout(t, tree, decls, View{Width: 400, Height: 600})
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, dimen.DU(90), st.Offsets[0].ContentSize.H)
	// childB stacks below childA
	assert.Equal(t, dimen.DU(40), st.Offsets[2].ContentSize.H)
	assert.Equal(t, dimen.DU(50), st.Offsets[2].BorderPos.Y)
	// grandchildren stack within childB
	assert.Equal(t, dimen.DU(0), st.Offsets[3].BorderPos.Y)
	assert.Equal(t, dimen.DU(20), st.Offsets[4].BorderPos.Y)
}

func TestSkipIntegrity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	b.Open()
	b.Open()
	b.Close()
	b.Close()
	b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	for e := 0; e < tree.Size(); e++ {
		block(decls, dom.NodeIndex(e))
	}
	_ = root
	//
	boxes := doLayout(t, tree, decls, View{Width: 400, Height: 600})
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, 4, st.Size())
	// skip of every block equals 1 plus the skips of its direct children
	for i := 0; i < st.Size(); i++ {
		sum := boxtree.BlockIndex(1)
		j := boxtree.BlockIndex(i) + 1
		end := boxtree.BlockIndex(i) + st.Skip(boxtree.BlockIndex(i))
		for j < end {
			sum += st.Skip(j)
			j += st.Skip(j)
		}
		assert.Equal(t, st.Skip(boxtree.BlockIndex(i)), sum, "skip mismatch at block %d", i)
	}
}

func TestDisplayNoneProducesNoBox(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	hidden := b.Open()
	b.Close()
	visible := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	decls.SetBoxStyle(hidden, style.BoxStyle{Display: style.Set(style.DisplayNone)})
	block(decls, visible)
	//
	boxes := doLayout(t, tree, decls, View{Width: 400, Height: 600})
	_, ok := boxes.GeneratedBoxOf(hidden)
	assert.False(t, ok)
	_, ok = boxes.GeneratedBoxOf(visible)
	assert.True(t, ok)
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, 2, st.Size())
}

func TestInlineTextProducesIFC(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	txt := b.Text("hello world wraps here")
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	//
	// 22 chars at 16 units in a 200-unit line: wraps
	boxes := doLayout(t, tree, decls, View{Width: 200, Height: 600})
	gb, ok := boxes.GeneratedBoxOf(txt)
	assert.True(t, ok)
	assert.Equal(t, boxtree.GenText, gb.Kind)
	ifc := boxes.IFCs[gb.IFC]
	assert.True(t, len(ifc.Lines) > 1)
	st := boxes.Subtree(boxes.Root)
	assert.Equal(t, 2, st.Size())
	assert.Equal(t, boxtree.KindIFCContainer, st.Kind(1))
	// the root's auto height is the IFC height
	assert.Equal(t, ifc.Height, st.Offsets[0].ContentSize.H)
}

func TestAbsolutePositioningUnsupported(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	abs := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	decls.SetBoxStyle(abs, style.BoxStyle{
		Display:  style.Set(style.DisplayBlock),
		Position: style.Set(style.PositionAbsolute),
	})
	//
	_, err := Layout(tree, decls, View{Width: 400, Height: 600}, monospace.Shaper(8, nil))
	assert.Error(t, err)
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
}

func TestFloatUnsupported(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	fl := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	decls.SetBoxStyle(fl, style.BoxStyle{
		Display: style.Set(style.DisplayBlock),
		Float:   style.Set(style.FloatLeft),
	})
	//
	_, err := Layout(tree, decls, View{Width: 400, Height: 600}, monospace.Shaper(8, nil))
	assert.Error(t, err)
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
}

func TestGeometryClosure(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	b := dom.NewBuilder()
	root := b.Open()
	child := b.Open()
	b.Close()
	b.Close()
	tree, _ := b.Tree()
	decls := style.NewDeclarations()
	block(decls, root)
	block(decls, child)
	width(decls, child, css.SomeDimen(100))
	height(decls, child, css.SomeDimen(60))
	decls.SetHorizontalEdges(child, style.Edges{
		PaddingStart:     style.Set(css.SomeDimen(7)),
		PaddingEnd:       style.Set(css.SomeDimen(11)),
		BorderStartStyle: style.Set(style.BorderSolid),
		BorderEndStyle:   style.Set(style.BorderSolid),
		BorderStartWidth: style.Set(css.SomeDimen(3)),
		BorderEndWidth:   style.Set(css.SomeDimen(5)),
	})
	decls.SetVerticalEdges(child, style.Edges{
		PaddingStart:     style.Set(css.SomeDimen(2)),
		PaddingEnd:       style.Set(css.SomeDimen(4)),
		BorderStartStyle: style.Set(style.BorderSolid),
		BorderEndStyle:   style.Set(style.BorderSolid),
		BorderStartWidth: style.Set(css.SomeDimen(6)),
		BorderEndWidth:   style.Set(css.SomeDimen(8)),
	})
	//
	boxes := doLayout(t, tree, decls, View{Width: 400, Height: 600})
	st := boxes.Subtree(boxes.Root)
	off := st.Offsets[1]
	// border_size closes over content position, content size and the
	// trailing padding and border
	assert.Equal(t, off.ContentPos.X+off.ContentSize.W+11+5, off.BorderSize.W)
	assert.Equal(t, off.ContentPos.Y+off.ContentSize.H+4+8, off.BorderSize.H)
	assert.Equal(t, dimen.Point{X: 3 + 7, Y: 6 + 2}, off.ContentPos)
}

func TestEmptyTreeFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	_, err := Layout(nil, nil, View{Width: 100, Height: 100}, monospace.Shaper(8, nil))
	assert.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}
