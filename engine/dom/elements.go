package dom

import (
	"errors"
	"math"

	"github.com/npillmayer/visfmt/core"
)

// NodeIndex addresses an element within a Tree.
// The index type bounds the size of documents the formatter accepts.
type NodeIndex uint16

// MaxNodes is the largest element count a Tree may hold.
const MaxNodes = math.MaxUint16

// Category distinguishes the two kinds of tree entries.
type Category uint8

// Element categories.
const (
	Element Category = iota // an element with optional children
	Text                    // a text leaf
)

var ErrNotClosed = errors.New("element tree has unclosed elements")
var ErrNoOpenElement = errors.New("no open element to close or append to")

// Tree is a flat, pre-order element store.
//
// Entry i owns the index range [i, i+skip(i)); skips never lie. A Tree is
// immutable after building and may be shared between layout passes.
type Tree struct {
	skips []uint16
	cats  []Category
	text  []string
}

// Size returns the number of entries in the tree.
func (t *Tree) Size() int {
	return len(t.skips)
}

// Skip returns the pre-order subtree size of element e, 1 for leaves.
func (t *Tree) Skip(e NodeIndex) NodeIndex {
	return NodeIndex(t.skips[e])
}

// Category returns whether e is an element or a text leaf.
func (t *Tree) Category(e NodeIndex) Category {
	return t.cats[e]
}

// Text returns the text content of a text leaf, "" for elements.
func (t *Tree) Text(e NodeIndex) string {
	return t.text[e]
}

// Root returns the root element index. Only valid for non-empty trees.
func (t *Tree) Root() NodeIndex {
	return 0
}

// FirstChild returns the first child of e, if any.
func (t *Tree) FirstChild(e NodeIndex) (NodeIndex, bool) {
	if t.skips[e] <= 1 {
		return 0, false
	}
	return e + 1, true
}

// NextSibling returns the sibling following e within parent, if any.
func (t *Tree) NextSibling(parent, e NodeIndex) (NodeIndex, bool) {
	next := e + NodeIndex(t.skips[e])
	if uint32(next) >= uint32(parent)+uint32(t.skips[parent]) {
		return 0, false
	}
	return next, true
}

// Children collects the direct children of e in document order.
func (t *Tree) Children(e NodeIndex) []NodeIndex {
	var children []NodeIndex
	c, ok := t.FirstChild(e)
	for ok {
		children = append(children, c)
		c, ok = t.NextSibling(e, c)
	}
	return children
}

// --- Building --------------------------------------------------------------

// Builder assembles a Tree in document order.
// Calls to Open must be balanced with calls to Close; text leaves are
// appended with Text.
type Builder struct {
	skips []uint16
	cats  []Category
	text  []string
	open  []int
	err   error
}

// NewBuilder creates an empty element tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) append(cat Category, text string) int {
	if b.err != nil {
		return -1
	}
	if len(b.skips) >= MaxNodes {
		b.err = core.ErrorWithCode(nil, core.EOVERFLOW)
		tracer().Errorf("element tree exceeds %d entries", MaxNodes)
		return -1
	}
	b.skips = append(b.skips, 1)
	b.cats = append(b.cats, cat)
	b.text = append(b.text, text)
	return len(b.skips) - 1
}

// Open starts a new element. Children appended before the matching Close
// become part of its subtree.
func (b *Builder) Open() NodeIndex {
	inx := b.append(Element, "")
	if inx < 0 {
		return 0
	}
	b.open = append(b.open, inx)
	return NodeIndex(inx)
}

// Close finishes the innermost open element and finalizes its skip.
func (b *Builder) Close() {
	if b.err != nil {
		return
	}
	if len(b.open) == 0 {
		b.err = ErrNoOpenElement
		return
	}
	inx := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]
	b.skips[inx] = uint16(len(b.skips) - inx)
}

// Text appends a text leaf to the innermost open element.
func (b *Builder) Text(content string) NodeIndex {
	if len(b.open) == 0 && len(b.skips) > 0 {
		b.err = ErrNoOpenElement
		return 0
	}
	inx := b.append(Text, content)
	if inx < 0 {
		return 0
	}
	return NodeIndex(inx)
}

// Tree returns the finished element tree.
func (b *Builder) Tree() (*Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.open) > 0 {
		return nil, ErrNotClosed
	}
	return &Tree{skips: b.skips, cats: b.cats, text: b.text}, nil
}
