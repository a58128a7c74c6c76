package boxtree

import "github.com/npillmayer/visfmt/engine/dom"

// GeneratedBoxKind discriminates what kind of box an element generated.
type GeneratedBoxKind uint8

const (
	// GenBlockBox: the element generated a block-level box.
	GenBlockBox GeneratedBoxKind = iota
	// GenInlineBox: the element generated an inline box within an IFC.
	GenInlineBox
	// GenText: the element is a text run within an IFC.
	GenText
)

// GeneratedBox records the principal box an element generated.
// Elements with display 'none' generate no box and have no entry.
type GeneratedBox struct {
	Kind      GeneratedBoxKind
	Block     BlockRef // valid for GenBlockBox
	IFC       uint16   // valid for GenInlineBox and GenText
	InlineBox uint16   // valid for GenInlineBox
}

// MapElementToBox records the principal box generated for an element.
func (t *Tree) MapElementToBox(e dom.NodeIndex, gb GeneratedBox) {
	t.elemMap[e] = gb
}

// GeneratedBoxOf looks up the box an element generated.
func (t *Tree) GeneratedBoxOf(e dom.NodeIndex) (GeneratedBox, bool) {
	gb, ok := t.elemMap[e]
	return gb, ok
}

// MappedElementCount returns the number of elements which generated boxes.
func (t *Tree) MappedElementCount() int {
	return len(t.elemMap)
}
