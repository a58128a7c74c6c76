package boxtree

import (
	"math"

	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/frame"
	"github.com/npillmayer/visfmt/engine/frame/inline"
)

// SubtreeID identifies a subtree within a Tree.
type SubtreeID uint16

// BlockIndex addresses a block within its subtree.
type BlockIndex uint16

// MaxBlocks bounds the number of blocks per subtree.
const MaxBlocks = math.MaxUint16

// BlockRef addresses a block across subtrees. Back references into the
// box tree are always (subtree, index) pairs, never pointers: the columns
// grow and may relocate.
type BlockRef struct {
	Subtree SubtreeID
	Index   BlockIndex
}

// BlockKind discriminates the three kinds of subtree entries.
type BlockKind uint8

const (
	// KindBlock is an ordinary flow block; it may own a stacking context.
	KindBlock BlockKind = iota
	// KindIFCContainer anchors an inline formatting context.
	KindIFCContainer
	// KindSubtreeProxy is a leaf standing in for another subtree's root.
	KindSubtreeProxy
)

// Subtree owns parallel columnar arrays of per-block data, indexed by
// BlockIndex in pre-order.
type Subtree struct {
	skips []uint16
	kinds []BlockKind
	// aux is kind-dependent: stacking context id + 1 (0 = none) for
	// blocks, the IFC index for IFC containers, the target subtree for
	// proxies.
	aux []uint16

	Offsets     []frame.BoxOffsets
	Borders     []frame.Borders
	Margins     []frame.Margins
	Insets      []frame.Insets
	BorderCols  []frame.BorderColors
	Backgrounds []frame.Background
}

// Size returns the number of blocks in the subtree.
func (st *Subtree) Size() int {
	return len(st.skips)
}

// Skip returns the pre-order subtree size of block i, 1 for leaves.
func (st *Subtree) Skip(i BlockIndex) BlockIndex {
	return BlockIndex(st.skips[i])
}

// SetSkip finalizes the skip of block i.
func (st *Subtree) SetSkip(i BlockIndex, skip BlockIndex) {
	st.skips[i] = uint16(skip)
}

// Kind returns the kind of block i.
func (st *Subtree) Kind(i BlockIndex) BlockKind {
	return st.kinds[i]
}

// StackingContext returns the stacking context generated by block i, if any.
func (st *Subtree) StackingContext(i BlockIndex) (StackingID, bool) {
	if st.kinds[i] != KindBlock || st.aux[i] == 0 {
		return 0, false
	}
	return StackingID(st.aux[i] - 1), true
}

// SetStackingContext records that block i generates stacking context id.
func (st *Subtree) SetStackingContext(i BlockIndex, id StackingID) {
	st.aux[i] = uint16(id) + 1
}

// IFCIndex returns the inline formatting context anchored at block i.
func (st *Subtree) IFCIndex(i BlockIndex) uint16 {
	return st.aux[i]
}

// ProxyTarget returns the subtree a proxy entry stands in for.
func (st *Subtree) ProxyTarget(i BlockIndex) SubtreeID {
	return SubtreeID(st.aux[i])
}

// AppendBlock appends a block of the given kind with skip 1 and zeroed
// geometry, returning its index.
func (st *Subtree) AppendBlock(kind BlockKind, aux uint16) (BlockIndex, error) {
	if len(st.skips) >= MaxBlocks {
		return 0, core.ErrorWithCode(nil, core.EOVERFLOW)
	}
	st.skips = append(st.skips, 1)
	st.kinds = append(st.kinds, kind)
	st.aux = append(st.aux, aux)
	st.Offsets = append(st.Offsets, frame.BoxOffsets{})
	st.Borders = append(st.Borders, frame.Borders{})
	st.Margins = append(st.Margins, frame.Margins{})
	st.Insets = append(st.Insets, frame.Insets{})
	st.BorderCols = append(st.BorderCols, frame.BorderColors{})
	st.Backgrounds = append(st.Backgrounds, frame.Background{})
	return BlockIndex(len(st.skips) - 1), nil
}

// --- Box tree --------------------------------------------------------------

// Tree is the complete output of a layout pass: subtrees, the stacking
// context tree, inline formatting contexts and the element→box map.
// After layout returns, a Tree is handed off immutably to the painter.
type Tree struct {
	subtrees []*Subtree
	Stacking *StackingTree
	IFCs     []*inline.IFC
	elemMap  map[dom.NodeIndex]GeneratedBox
	// Root is the subtree holding the initial containing block's content.
	Root SubtreeID
}

// NewTree creates an empty box tree.
func NewTree() *Tree {
	return &Tree{
		Stacking: NewStackingTree(),
		elemMap:  make(map[dom.NodeIndex]GeneratedBox),
	}
}

// NewSubtree appends a fresh, empty subtree.
func (t *Tree) NewSubtree() (SubtreeID, *Subtree) {
	st := &Subtree{}
	t.subtrees = append(t.subtrees, st)
	return SubtreeID(len(t.subtrees) - 1), st
}

// Subtree returns the subtree with the given id.
func (t *Tree) Subtree(id SubtreeID) *Subtree {
	return t.subtrees[id]
}

// SubtreeCount returns the number of subtrees.
func (t *Tree) SubtreeCount() int {
	return len(t.subtrees)
}

// AppendIFC stores a finished inline formatting context and returns its
// index.
func (t *Tree) AppendIFC(ifc *inline.IFC) uint16 {
	t.IFCs = append(t.IFCs, ifc)
	return uint16(len(t.IFCs) - 1)
}

// --- Traversal -------------------------------------------------------------

// WalkBlocks visits the blocks of a subtree in pre-order, following
// subtree proxies into their target subtrees. depth is relative to the
// traversal root.
func (t *Tree) WalkBlocks(root SubtreeID, visit func(ref BlockRef, depth int) error) error {
	return t.walk(root, 0, visit)
}

func (t *Tree) walk(id SubtreeID, depth int, visit func(ref BlockRef, depth int) error) error {
	st := t.subtrees[id]
	type walkFrame struct {
		end   BlockIndex
		depth int
	}
	var stack []walkFrame
	for i := BlockIndex(0); int(i) < st.Size(); i++ {
		for len(stack) > 0 && i >= stack[len(stack)-1].end {
			stack = stack[:len(stack)-1]
		}
		d := depth
		if len(stack) > 0 {
			d = stack[len(stack)-1].depth + 1
		}
		if st.Kind(i) == KindSubtreeProxy {
			if err := t.walk(st.ProxyTarget(i), d, visit); err != nil {
				return err
			}
			continue
		}
		if err := visit(BlockRef{Subtree: id, Index: i}, d); err != nil {
			return err
		}
		if st.Skip(i) > 1 {
			stack = append(stack, walkFrame{end: i + st.Skip(i), depth: d})
		}
	}
	return nil
}
