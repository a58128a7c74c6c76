package html

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/frame/layout"
	"github.com/npillmayer/visfmt/engine/glyphing/monospace"
	"github.com/stretchr/testify/assert"
)

var minihtml = `
<html><head>
<style>
  p { border-color: red; margin-left: 10px; }
  .wide { width: 200px; }
</style>
</head><body>
  <p class="wide">The quick brown fox jumps over the lazy dog.</p>
</body>
`

func TestBuildDocument(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree, decls, err := BuildDocument(strings.NewReader(minihtml))
	if err != nil {
		t.Fatalf("cannot build document: %v", err)
	}
	// body, p and one text leaf
	assert.Equal(t, 3, tree.Size())
	assert.Equal(t, dom.Element, tree.Category(1))
	assert.Equal(t, dom.Text, tree.Category(2))
	assert.Contains(t, tree.Text(2), "quick brown fox")
	assert.NotNil(t, decls)
}

func TestDocumentLayoutEndToEnd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	tree, decls, err := BuildDocument(strings.NewReader(minihtml))
	if err != nil {
		t.Fatalf("cannot build document: %v", err)
	}
	boxes, err := layout.Layout(tree, decls, layout.View{Width: 800, Height: 600},
		monospace.Shaper(8, nil))
	if err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	gb, ok := boxes.GeneratedBoxOf(1) // the <p>
	assert.True(t, ok)
	st := boxes.Subtree(gb.Block.Subtree)
	// width: 200px = 400 device units; margin-left 10px = 20 units
	assert.Equal(t, dimen.DU(400), st.Offsets[gb.Block.Index].ContentSize.W)
	assert.Equal(t, dimen.DU(20), st.Margins[gb.Block.Index].Left)
	// the text run got laid out into at least one line
	gbt, ok := boxes.GeneratedBoxOf(2)
	assert.True(t, ok)
	assert.True(t, len(boxes.IFCs[gbt.IFC].Lines) > 0)
}

func TestInlineStyleAttributeWins(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	doc := `<html><head><style>div { width: 100px; }</style></head>
	<body><div style="width: 50px"></div></body></html>`
	tree, decls, err := BuildDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	boxes, err := layout.Layout(tree, decls, layout.View{Width: 800, Height: 600},
		monospace.Shaper(8, nil))
	if err != nil {
		t.Fatal(err)
	}
	gb, _ := boxes.GeneratedBoxOf(1)
	st := boxes.Subtree(gb.Block.Subtree)
	assert.Equal(t, dimen.DU(100), st.Offsets[gb.Block.Index].ContentSize.W)
	_ = tree
}

func TestShorthandExpansion(t *testing.T) {
	props := map[string]string{"margin": "1px 2px", "margin-top": "5px"}
	expandShorthands(props)
	assert.Equal(t, "5px", props["margin-top"])
	assert.Equal(t, "2px", props["margin-right"])
	assert.Equal(t, "1px", props["margin-bottom"])
	assert.Equal(t, "2px", props["margin-left"])
	//
	props = map[string]string{"border": "5px solid red"}
	expandShorthands(props)
	assert.Equal(t, "5px", props["border-left-width"])
	assert.Equal(t, "solid", props["border-top-style"])
	assert.Equal(t, "red", props["border-bottom-color"])
}
