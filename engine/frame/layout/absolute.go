package layout

import (
	"github.com/npillmayer/visfmt/engine/frame/boxtree"
)

// positionedAncestors tracks the chain of positioned blocks during the
// flow DFS. A positioned block establishes the containing block for
// absolutely positioned descendants, so the registrar records which
// generated box an out-of-flow element would resolve against.
//
// Laying out absolutely positioned boxes needs a separate pass after
// flow layout, which this engine does not implement: encountering one is
// a terminal Unsupported condition. The registrar still records the
// containing block that would apply; the returned error names only the
// positioning scheme.
type positionedAncestors struct {
	stack   []boxtree.BlockRef
	pending []pendingAbsolute
}

type pendingAbsolute struct {
	containing boxtree.BlockRef
	hasCB      bool
}

func (p *positionedAncestors) push(ref boxtree.BlockRef) {
	p.stack = append(p.stack, ref)
}

func (p *positionedAncestors) pop() {
	p.stack = p.stack[:len(p.stack)-1]
}

// containingBlock returns the nearest positioned ancestor's block.
func (p *positionedAncestors) containingBlock() (boxtree.BlockRef, bool) {
	if len(p.stack) == 0 {
		return boxtree.BlockRef{}, false
	}
	return p.stack[len(p.stack)-1], true
}

// registerAbsolute records an out-of-flow element against its would-be
// containing block.
func (p *positionedAncestors) registerAbsolute() {
	cb, ok := p.containingBlock()
	p.pending = append(p.pending, pendingAbsolute{containing: cb, hasCB: ok})
	tracer().Debugf("registered absolutely positioned element, containing block known: %v", ok)
}
