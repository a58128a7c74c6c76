package frame

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
	"github.com/stretchr/testify/assert"
)

func specWith(width, minW, maxW css.DimenT, hedges style.ComputedEdges) BlockComputedSizes {
	spec := BlockComputedSizes{}
	spec.Width = style.ComputedSize{Size: width, Min: minW, Max: maxW}
	spec.Height = style.ComputedSize{Size: css.Auto(), Min: css.SomeDimen(0), Max: css.NoneDimen()}
	spec.HEdges = hedges
	spec.VEdges = zeroEdges()
	return spec
}

func zeroEdges() style.ComputedEdges {
	return style.ComputedEdges{
		PaddingStart: css.SomeDimen(0), PaddingEnd: css.SomeDimen(0),
		BorderStartWidth: css.SomeDimen(0), BorderEndWidth: css.SomeDimen(0),
		MarginStart: css.SomeDimen(0), MarginEnd: css.SomeDimen(0),
	}
}

func TestSolveWidthAsRest(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	// width:auto, margins 10/20, border 5 solid, padding 15 in a 400 cb
	edges := style.ComputedEdges{
		PaddingStart: css.SomeDimen(15), PaddingEnd: css.SomeDimen(15),
		BorderStartStyle: style.BorderSolid, BorderEndStyle: style.BorderSolid,
		BorderStartWidth: css.SomeDimen(5), BorderEndWidth: css.SomeDimen(5),
		MarginStart: css.SomeDimen(10), MarginEnd: css.SomeDimen(20),
	}
	spec := specWith(css.Auto(), css.SomeDimen(0), css.NoneDimen(), edges)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveWidths(spec, 400, used))
	assert.Equal(t, dimen.DU(330), used.InlineSize)
	assert.Equal(t, dimen.DU(10), used.MarginInlineStart)
	assert.Equal(t, dimen.DU(20), used.MarginInlineEnd)
	// margin-box spans the containing block exactly
	assert.Equal(t, dimen.DU(400), used.OuterInlineSize())
}

func TestSolveWidthAutoMarginsCentering(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	edges := zeroEdges()
	edges.MarginStart = css.Auto()
	edges.MarginEnd = css.Auto()
	spec := specWith(css.SomeDimen(200), css.SomeDimen(0), css.NoneDimen(), edges)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveWidths(spec, 801, used))
	assert.Equal(t, dimen.DU(200), used.InlineSize)
	assert.Equal(t, dimen.DU(300), used.MarginInlineStart)
	// the odd unit lands in the end margin
	assert.Equal(t, dimen.DU(301), used.MarginInlineEnd)
}

func TestSolveWidthSingleAutoMargin(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	edges := zeroEdges()
	edges.MarginEnd = css.Auto()
	spec := specWith(css.SomeDimen(300), css.SomeDimen(0), css.NoneDimen(), edges)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveWidths(spec, 500, used))
	assert.Equal(t, dimen.DU(0), used.MarginInlineStart)
	assert.Equal(t, dimen.DU(200), used.MarginInlineEnd)
}

func TestSolveWidthOverconstrained(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	edges := zeroEdges()
	edges.MarginStart = css.SomeDimen(100)
	edges.MarginEnd = css.SomeDimen(100)
	spec := specWith(css.SomeDimen(450), css.SomeDimen(0), css.NoneDimen(), edges)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveWidths(spec, 500, used))
	// end margin absorbs the excess and goes negative
	assert.Equal(t, dimen.DU(-50), used.MarginInlineEnd)
}

func TestSolveWidthMinClampWithAutoMargins(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	edges := zeroEdges()
	edges.MarginStart = css.Auto()
	edges.MarginEnd = css.Auto()
	spec := specWith(css.SomeDimen(200), css.SomeDimen(300), css.SomeDimen(400), edges)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveWidths(spec, 500, used))
	assert.Equal(t, dimen.DU(300), used.InlineSize)
	assert.Equal(t, dimen.DU(100), used.MarginInlineStart)
	assert.Equal(t, dimen.DU(100), used.MarginInlineEnd)
}

func TestBorderStyleSuppressesWidth(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	edges := zeroEdges()
	edges.BorderStartStyle = style.BorderNone
	edges.BorderStartWidth = css.SomeDimen(10)
	edges.BorderEndStyle = style.BorderSolid
	edges.BorderEndWidth = css.SomeDimen(10)
	spec := specWith(css.Auto(), css.SomeDimen(0), css.NoneDimen(), edges)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveWidths(spec, 100, used))
	assert.Equal(t, dimen.DU(0), used.BorderInlineStart)
	assert.Equal(t, dimen.DU(10), used.BorderInlineEnd)
}

func TestNegativeWidthFails(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	spec := specWith(css.SomeDimen(-1), css.SomeDimen(0), css.NoneDimen(), zeroEdges())
	used := &BlockUsedSizes{}
	err := SolveWidths(spec, 100, used)
	assert.Error(t, err)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestSolveHeightPercentAgainstUnknown(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	spec := specWith(css.Auto(), css.SomeDimen(0), css.NoneDimen(), zeroEdges())
	spec.Height.Size = css.Percentage(50)
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveHeights(spec, 400, css.Dimen(), used))
	_, ok := used.Get(FieldBlockSize)
	assert.False(t, ok, "percent height against unknown H must become auto")
	//
	assert.NoError(t, SolveHeights(spec, 400, css.SomeDimen(600), used))
	h, ok := used.Get(FieldBlockSize)
	assert.True(t, ok)
	assert.Equal(t, dimen.DU(300), h)
}

func TestBlockAxisAutoMarginsAreZero(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	spec := specWith(css.Auto(), css.SomeDimen(0), css.NoneDimen(), zeroEdges())
	spec.VEdges.MarginStart = css.Auto()
	spec.VEdges.MarginEnd = css.Auto()
	used := &BlockUsedSizes{}
	assert.NoError(t, SolveHeights(spec, 400, css.Dimen(), used))
	assert.Equal(t, dimen.DU(0), used.MarginBlockStart)
	assert.Equal(t, dimen.DU(0), used.MarginBlockEnd)
}

func TestSolveInsets(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	in := style.ComputedInsets{
		Left: css.SomeDimen(10), Right: css.SomeDimen(99),
		Top: css.Auto(), Bottom: css.SomeDimen(20),
	}
	shift := SolveInsets(in, 100, 100)
	assert.Equal(t, dimen.DU(10), shift.X) // left beats right
	assert.Equal(t, dimen.DU(-20), shift.Y)
}
