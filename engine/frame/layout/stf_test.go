package layout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
	"github.com/npillmayer/visfmt/engine/frame/boxtree"
	"github.com/stretchr/testify/assert"
)

// inlineBlockDoc builds root > inline-block > (configurable children).
func inlineBlockDoc(t *testing.T, build func(b *dom.Builder)) (*dom.Tree, *style.Declarations, dom.NodeIndex) {
	b := dom.NewBuilder()
	root := b.Open()
	ib := b.Open()
	build(b)
	b.Close()
	b.Close()
	tree, err := b.Tree()
	if err != nil {
		t.Fatal(err)
	}
	decls := style.NewDeclarations()
	block(decls, root)
	decls.SetBoxStyle(ib, style.BoxStyle{Display: style.Set(style.DisplayInlineBlock)})
	return tree, decls, ib
}

func TestSTFExplicitWidthBypassesObjectTree(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree, decls, ib := inlineBlockDoc(t, func(b *dom.Builder) {})
	width(decls, ib, css.SomeDimen(120))
	height(decls, ib, css.SomeDimen(30))
	//
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 500})
	gb, ok := boxes.GeneratedBoxOf(ib)
	assert.True(t, ok)
	tgt := boxes.Subtree(gb.Block.Subtree)
	assert.Equal(t, dimen.DU(120), tgt.Offsets[gb.Block.Index].ContentSize.W)
	assert.Equal(t, dimen.DU(30), tgt.Offsets[gb.Block.Index].ContentSize.H)
}

// A block with a definite inline size produces identical geometry whether
// its parent lays it out in normal flow or through shrink-to-fit.
func TestSTFIdempotence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	edges := style.Edges{
		PaddingStart:     style.Set(css.SomeDimen(5)),
		PaddingEnd:       style.Set(css.SomeDimen(5)),
		BorderStartStyle: style.Set(style.BorderSolid),
		BorderEndStyle:   style.Set(style.BorderSolid),
		BorderStartWidth: style.Set(css.SomeDimen(2)),
		BorderEndWidth:   style.Set(css.SomeDimen(2)),
		MarginStart:      style.Set(css.SomeDimen(8)),
		MarginEnd:        style.Set(css.SomeDimen(8)),
	}
	// flow parent
	b := dom.NewBuilder()
	root := b.Open()
	blk := b.Open()
	b.Close()
	b.Close()
	flowTree, _ := b.Tree()
	flowDecls := style.NewDeclarations()
	block(flowDecls, root)
	block(flowDecls, blk)
	width(flowDecls, blk, css.SomeDimen(100))
	height(flowDecls, blk, css.SomeDimen(40))
	flowDecls.SetHorizontalEdges(blk, edges)
	flowBoxes := doLayout(t, flowTree, flowDecls, View{Width: 500, Height: 500})
	fgb, _ := flowBoxes.GeneratedBoxOf(blk)
	fst := flowBoxes.Subtree(fgb.Block.Subtree)
	//
	// shrink-to-fit parent: same block inside an auto-width inline-block
	tree, decls, ib := inlineBlockDoc(t, func(b *dom.Builder) {
		b.Open() // the inner block, element index 2
		b.Close()
	})
	inner := dom.NodeIndex(2)
	block(decls, inner)
	width(decls, inner, css.SomeDimen(100))
	height(decls, inner, css.SomeDimen(40))
	decls.SetHorizontalEdges(inner, edges)
	_ = ib
	stfBoxes := doLayout(t, tree, decls, View{Width: 500, Height: 500})
	sgb, _ := stfBoxes.GeneratedBoxOf(inner)
	sst := stfBoxes.Subtree(sgb.Block.Subtree)
	//
	fOff := fst.Offsets[fgb.Block.Index]
	sOff := sst.Offsets[sgb.Block.Index]
	assert.Equal(t, fOff.BorderSize, sOff.BorderSize)
	assert.Equal(t, fOff.ContentSize, sOff.ContentSize)
	assert.Equal(t, fOff.ContentPos, sOff.ContentPos)
	assert.Equal(t, fst.Borders[fgb.Block.Index], sst.Borders[sgb.Block.Index])
	// the start margin places the box; the end margin may differ, it
	// absorbs the over-constrained remainder of the containing block
	assert.Equal(t, fst.Margins[fgb.Block.Index].Left, sst.Margins[sgb.Block.Index].Left)
	assert.Equal(t, fOff.BorderPos.X, sOff.BorderPos.X)
}

func TestSTFNestedAutoWidth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	// inline-block > auto-width block > block of width 90
	tree, decls, ib := inlineBlockDoc(t, func(b *dom.Builder) {
		b.Open() // element 2: auto width
		b.Open() // element 3: width 90
		b.Close()
		b.Close()
	})
	block(decls, 2)
	block(decls, 3)
	width(decls, 3, css.SomeDimen(90))
	height(decls, 3, css.SomeDimen(10))
	//
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 500})
	gb, _ := boxes.GeneratedBoxOf(ib)
	tgt := boxes.Subtree(gb.Block.Subtree)
	// the intrinsic width propagates through the nested auto-width block
	assert.Equal(t, dimen.DU(90), tgt.Offsets[gb.Block.Index].ContentSize.W)
	ngb, ok := boxes.GeneratedBoxOf(2)
	assert.True(t, ok)
	assert.Equal(t, dimen.DU(90), boxes.Subtree(ngb.Block.Subtree).Offsets[ngb.Block.Index].ContentSize.W)
}

func TestSTFStackingFixup(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	// a relatively positioned inline-block creates its stacking context
	// before its block exists; the reference must be patched in
	tree, decls, ib := inlineBlockDoc(t, func(b *dom.Builder) {
		b.Text("x")
	})
	decls.SetBoxStyle(ib, style.BoxStyle{
		Display:  style.Set(style.DisplayInlineBlock),
		Position: style.Set(style.PositionRelative),
	})
	decls.SetZIndex(ib, style.ZIndex{Z: style.Set(style.ZInt(3))})
	//
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 500})
	gb, _ := boxes.GeneratedBoxOf(ib)
	var found bool
	boxes.Stacking.Walk(func(ctx boxtree.Context, depth int) {
		if ctx.ZIndex == 3 {
			found = true
			assert.Equal(t, gb.Block, ctx.Ref, "stacking context must reference the realized block")
		}
	})
	assert.True(t, found)
	// the block records its stacking context id
	tgt := boxes.Subtree(gb.Block.Subtree)
	_, hasSC := tgt.StackingContext(gb.Block.Index)
	assert.True(t, hasSC)
}

func TestSTFMinMaxClamp(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree, decls, ib := inlineBlockDoc(t, func(b *dom.Builder) {
		b.Text("hi") // intrinsic 32 units
	})
	decls.SetWidth(ib, style.ContentSize{Min: style.Set(css.SomeDimen(100))})
	//
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 500})
	gb, _ := boxes.GeneratedBoxOf(ib)
	tgt := boxes.Subtree(gb.Block.Subtree)
	assert.Equal(t, dimen.DU(100), tgt.Offsets[gb.Block.Index].ContentSize.W)
}

func TestProxySkipStaysOne(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree, decls, ib := inlineBlockDoc(t, func(b *dom.Builder) {
		b.Text("x")
	})
	_ = ib
	boxes := doLayout(t, tree, decls, View{Width: 500, Height: 500})
	st := boxes.Subtree(boxes.Root)
	// root block, IFC container, inline-block proxy
	assert.Equal(t, 3, st.Size())
	assert.Equal(t, boxtree.KindIFCContainer, st.Kind(1))
	assert.Equal(t, boxtree.KindSubtreeProxy, st.Kind(2))
	assert.Equal(t, boxtree.BlockIndex(1), st.Skip(2))
	assert.Equal(t, boxtree.BlockIndex(2), st.Skip(1))
	assert.Equal(t, boxtree.BlockIndex(3), st.Skip(0))
}
