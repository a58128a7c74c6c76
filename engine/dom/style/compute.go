package style

import (
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/engine/dom"
)

// Computer turns cascaded values into computed values while a client walks
// the element tree in pre-order.
//
// The computer maintains one stack of inherited values per property
// aggregate. Clients call SetCurrentElement when they arrive at an element,
// read or override the computed aggregates, then bracket the element's
// children with PushElement/PopElement. Every push must be matched by a pop
// on all exit paths. The computer is single-threaded.
type Computer struct {
	tree  *dom.Tree
	decls *Declarations

	boxStack     []ComputedBoxStyle
	widthStack   []ComputedSize
	heightStack  []ComputedSize
	hEdgesStack  []ComputedEdges
	vEdgesStack  []ComputedEdges
	zStack       []ZIndexT
	insetsStack  []ComputedInsets
	bordColStack []ComputedBorderColors
	bgStack      []ComputedBackground
	colorStack   []Color

	cur         Styles
	flags       uint16
	haveCurrent bool
}

const allGroupFlags uint16 = 1<<numGroups - 1

// NewComputer creates a style computer over an element tree and its
// cascaded value store.
func NewComputer(tree *dom.Tree, decls *Declarations) *Computer {
	if decls == nil {
		decls = NewDeclarations()
	}
	return &Computer{tree: tree, decls: decls}
}

// resolve maps one cascaded sub-value to its computed value.
// inheritedProp tells whether the property inherits by default; top is the
// inherited value from the enclosing element, valid only if ok is true.
func resolve[T any](cv CV[T], all CVKind, inheritedProp bool, top T, ok bool, initial T) T {
	kind := cv.Kind()
	if kind == Undeclared && all != Undeclared {
		kind = all
	}
	switch kind {
	case Declared:
		return cv.Value()
	case Initial:
		return initial
	case Inherit:
		if ok {
			return top
		}
		return initial
	}
	// Unset and Undeclared follow the property's inheritance class.
	if inheritedProp && ok {
		return top
	}
	return initial
}

// SetCurrentElement computes the styles for element e from its cascaded
// values and the inherited-value stacks. The computed aggregates stay
// current until the next call; clients may override single aggregates
// before pushing.
func (c *Computer) SetCurrentElement(e dom.NodeIndex) {
	all := c.decls.all[e]

	// color first: border colors and backgrounds resolve currentColor
	// against it.  currentColor on the color property itself means inherit.
	inhColor, hasInh := c.topColor()
	colorDecl := c.decls.color[e].Color
	if colorDecl.Kind() == Declared && colorDecl.Value().IsCurrentColor() {
		colorDecl = Keyword[ColorT](Inherit)
	}
	ct := resolve(colorDecl, all, true, SomeColor(inhColor), hasInh, SomeColor(Black))
	c.cur.Color = ct.Unwrap()

	box := c.decls.box[e]
	boxTop, boxOk := top(c.boxStack)
	initialBox := initialBoxStyle()
	c.cur.Box = ComputedBoxStyle{
		Display:  resolve(box.Display, all, false, boxTop.Display, boxOk, initialBox.Display),
		Position: resolve(box.Position, all, false, boxTop.Position, boxOk, initialBox.Position),
		Float:    resolve(box.Float, all, false, boxTop.Float, boxOk, initialBox.Float),
	}

	c.cur.Width = c.computeSize(c.decls.width[e], all, c.widthStack)
	c.cur.Height = c.computeSize(c.decls.height[e], all, c.heightStack)
	c.cur.HEdges = c.computeEdges(c.decls.hEdges[e], all, c.hEdgesStack)
	c.cur.VEdges = c.computeEdges(c.decls.vEdges[e], all, c.vEdgesStack)

	z := c.decls.zindex[e]
	zTop, zOk := top(c.zStack)
	c.cur.ZIndex = resolve(z.Z, all, false, zTop, zOk, ZAuto())

	in := c.decls.insets[e]
	inTop, inOk := top(c.insetsStack)
	initialIn := initialInsets()
	c.cur.Insets = ComputedInsets{
		Left:   resolve(in.Left, all, false, inTop.Left, inOk, initialIn.Left),
		Right:  resolve(in.Right, all, false, inTop.Right, inOk, initialIn.Right),
		Top:    resolve(in.Top, all, false, inTop.Top, inOk, initialIn.Top),
		Bottom: resolve(in.Bottom, all, false, inTop.Bottom, inOk, initialIn.Bottom),
	}

	bc := c.decls.borderColors[e]
	bcTop, bcOk := top(c.bordColStack)
	c.cur.BorderColors = ComputedBorderColors{
		Left:   c.asColor(resolve(bc.Left, all, false, SomeColor(bcTop.Left), bcOk, CurrentColor())),
		Right:  c.asColor(resolve(bc.Right, all, false, SomeColor(bcTop.Right), bcOk, CurrentColor())),
		Top:    c.asColor(resolve(bc.Top, all, false, SomeColor(bcTop.Top), bcOk, CurrentColor())),
		Bottom: c.asColor(resolve(bc.Bottom, all, false, SomeColor(bcTop.Bottom), bcOk, CurrentColor())),
	}

	bg := c.decls.background[e]
	bgTop, bgOk := top(c.bgStack)
	c.cur.Background = ComputedBackground{
		Color: c.asColor(resolve(bg.Color, all, false, SomeColor(bgTop.Color), bgOk, SomeColor(Transparent))),
	}

	c.flags = allGroupFlags
	c.haveCurrent = true
	tracer().Debugf("computed styles for element %d: display=%v", e, c.cur.Box.Display)
}

func (c *Computer) computeSize(cs ContentSize, all CVKind, stack []ComputedSize) ComputedSize {
	t, ok := top(stack)
	initial := initialSize()
	return ComputedSize{
		Size: resolve(cs.Size, all, false, t.Size, ok, initial.Size),
		Min:  resolve(cs.Min, all, false, t.Min, ok, initial.Min),
		Max:  resolve(cs.Max, all, false, t.Max, ok, initial.Max),
	}
}

func (c *Computer) computeEdges(ed Edges, all CVKind, stack []ComputedEdges) ComputedEdges {
	t, ok := top(stack)
	initial := initialEdges()
	return ComputedEdges{
		PaddingStart:     resolve(ed.PaddingStart, all, false, t.PaddingStart, ok, initial.PaddingStart),
		PaddingEnd:       resolve(ed.PaddingEnd, all, false, t.PaddingEnd, ok, initial.PaddingEnd),
		BorderStartStyle: resolve(ed.BorderStartStyle, all, false, t.BorderStartStyle, ok, initial.BorderStartStyle),
		BorderEndStyle:   resolve(ed.BorderEndStyle, all, false, t.BorderEndStyle, ok, initial.BorderEndStyle),
		BorderStartWidth: resolve(ed.BorderStartWidth, all, false, t.BorderStartWidth, ok, initial.BorderStartWidth),
		BorderEndWidth:   resolve(ed.BorderEndWidth, all, false, t.BorderEndWidth, ok, initial.BorderEndWidth),
		MarginStart:      resolve(ed.MarginStart, all, false, t.MarginStart, ok, initial.MarginStart),
		MarginEnd:        resolve(ed.MarginEnd, all, false, t.MarginEnd, ok, initial.MarginEnd),
	}
}

// asColor resolves currentColor against the element's computed color.
func (c *Computer) asColor(ct ColorT) Color {
	if ct.IsCurrentColor() {
		return c.cur.Color
	}
	return ct.Unwrap()
}

func (c *Computer) topColor() (Color, bool) {
	return top(c.colorStack)
}

func top[T any](stack []T) (T, bool) {
	if len(stack) == 0 {
		var zero T
		return zero, false
	}
	return stack[len(stack)-1], true
}

// Styles returns the computed aggregates of the current element.
func (c *Computer) Styles() *Styles {
	return &c.cur
}

// SetBoxStyle overrides the computed box style of the current element.
// Layout uses this for the root display switch.
func (c *Computer) SetBoxStyle(bs ComputedBoxStyle) {
	c.cur.Box = bs
	c.flags |= 1 << GroupBoxStyle
}

// PushElement snapshots the current computed values onto the inheritance
// stacks, making them visible to the element's children.
func (c *Computer) PushElement() error {
	if !c.haveCurrent || c.flags != allGroupFlags {
		return core.Error(core.EINTERNAL, "style computer: push without complete current element")
	}
	c.boxStack = append(c.boxStack, c.cur.Box)
	c.widthStack = append(c.widthStack, c.cur.Width)
	c.heightStack = append(c.heightStack, c.cur.Height)
	c.hEdgesStack = append(c.hEdgesStack, c.cur.HEdges)
	c.vEdgesStack = append(c.vEdgesStack, c.cur.VEdges)
	c.zStack = append(c.zStack, c.cur.ZIndex)
	c.insetsStack = append(c.insetsStack, c.cur.Insets)
	c.bordColStack = append(c.bordColStack, c.cur.BorderColors)
	c.bgStack = append(c.bgStack, c.cur.Background)
	c.colorStack = append(c.colorStack, c.cur.Color)
	c.haveCurrent = false
	c.flags = 0
	return nil
}

// PopElement undoes the matching PushElement.
func (c *Computer) PopElement() {
	n := len(c.boxStack) - 1
	c.boxStack = c.boxStack[:n]
	c.widthStack = c.widthStack[:n]
	c.heightStack = c.heightStack[:n]
	c.hEdgesStack = c.hEdgesStack[:n]
	c.vEdgesStack = c.vEdgesStack[:n]
	c.zStack = c.zStack[:n]
	c.insetsStack = c.insetsStack[:n]
	c.bordColStack = c.bordColStack[:n]
	c.bgStack = c.bgStack[:n]
	c.colorStack = c.colorStack[:n]
}

// Depth returns the current nesting depth of pushed elements.
func (c *Computer) Depth() int {
	return len(c.boxStack)
}
