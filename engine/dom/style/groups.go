package style

import (
	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
)

// Properties are cascaded and computed in aggregate groups, one group per
// coherent set of sub-properties. Groups keep the per-element storage
// columnar and give the style computer a fixed, enumerable property set.

// GroupID enumerates the property aggregates.
type GroupID uint8

//go:generate stringer -type=GroupID
const (
	GroupBoxStyle GroupID = iota
	GroupWidth
	GroupHeight
	GroupHorizontalEdges
	GroupVerticalEdges
	GroupZIndex
	GroupInsets
	GroupBorderColors
	GroupBackground
	GroupColor
	numGroups
)

// --- Cascaded aggregates ---------------------------------------------------

// BoxStyle aggregates display, position and float.
type BoxStyle struct {
	Display  CV[DisplayProp]
	Position CV[PositionProp]
	Float    CV[FloatProp]
}

// ContentSize aggregates size, min-size and max-size for one axis.
type ContentSize struct {
	Size CV[css.DimenT]
	Min  CV[css.DimenT]
	Max  CV[css.DimenT]
}

// Edges aggregates padding, border and margin for one axis.
// Start/End mean left/right for the horizontal group and top/bottom for
// the vertical group.
type Edges struct {
	PaddingStart     CV[css.DimenT]
	PaddingEnd       CV[css.DimenT]
	BorderStartStyle CV[BorderStyleProp]
	BorderEndStyle   CV[BorderStyleProp]
	BorderStartWidth CV[css.DimenT]
	BorderEndWidth   CV[css.DimenT]
	MarginStart      CV[css.DimenT]
	MarginEnd        CV[css.DimenT]
}

// ZIndex aggregates the z-index property.
type ZIndex struct {
	Z CV[ZIndexT]
}

// Insets aggregates the box offsets left/right/top/bottom.
type Insets struct {
	Left   CV[css.DimenT]
	Right  CV[css.DimenT]
	Top    CV[css.DimenT]
	Bottom CV[css.DimenT]
}

// BorderColors aggregates the four border-color properties.
type BorderColors struct {
	Left   CV[ColorT]
	Right  CV[ColorT]
	Top    CV[ColorT]
	Bottom CV[ColorT]
}

// Background aggregates the background properties relevant here.
type Background struct {
	Color CV[ColorT]
}

// TextColor aggregates the color property.
type TextColor struct {
	Color CV[ColorT]
}

// --- Computed aggregates ---------------------------------------------------

// ComputedBoxStyle is the computed form of BoxStyle.
type ComputedBoxStyle struct {
	Display  DisplayProp
	Position PositionProp
	Float    FloatProp
}

// ComputedSize is the computed form of ContentSize. Dimensions may still be
// auto, 'none' or %-relative; resolution against a containing block happens
// during layout.
type ComputedSize struct {
	Size css.DimenT
	Min  css.DimenT
	Max  css.DimenT
}

// ComputedEdges is the computed form of Edges.
type ComputedEdges struct {
	PaddingStart     css.DimenT
	PaddingEnd       css.DimenT
	BorderStartStyle BorderStyleProp
	BorderEndStyle   BorderStyleProp
	BorderStartWidth css.DimenT
	BorderEndWidth   css.DimenT
	MarginStart      css.DimenT
	MarginEnd        css.DimenT
}

// ComputedInsets is the computed form of Insets.
type ComputedInsets struct {
	Left   css.DimenT
	Right  css.DimenT
	Top    css.DimenT
	Bottom css.DimenT
}

// ComputedBorderColors is the computed form of BorderColors, with
// 'currentColor' already resolved against the element's color.
type ComputedBorderColors struct {
	Left   Color
	Right  Color
	Top    Color
	Bottom Color
}

// ComputedBackground is the computed form of Background.
type ComputedBackground struct {
	Color Color
}

// Styles bundles all computed aggregates for one element.
type Styles struct {
	Box          ComputedBoxStyle
	Width        ComputedSize
	Height       ComputedSize
	HEdges       ComputedEdges
	VEdges       ComputedEdges
	ZIndex       ZIndexT
	Insets       ComputedInsets
	BorderColors ComputedBorderColors
	Background   ComputedBackground
	Color        Color
}

// --- Initial values --------------------------------------------------------

func initialBoxStyle() ComputedBoxStyle {
	return ComputedBoxStyle{Display: DisplayInline, Position: PositionStatic, Float: FloatNone}
}

func initialSize() ComputedSize {
	return ComputedSize{Size: css.Auto(), Min: css.SomeDimen(0), Max: css.NoneDimen()}
}

func initialEdges() ComputedEdges {
	return ComputedEdges{
		PaddingStart:     css.SomeDimen(0),
		PaddingEnd:       css.SomeDimen(0),
		BorderStartStyle: BorderNone,
		BorderEndStyle:   BorderNone,
		BorderStartWidth: css.BorderWidthKeyword("medium"),
		BorderEndWidth:   css.BorderWidthKeyword("medium"),
		MarginStart:      css.SomeDimen(0),
		MarginEnd:        css.SomeDimen(0),
	}
}

func initialInsets() ComputedInsets {
	return ComputedInsets{Left: css.Auto(), Right: css.Auto(), Top: css.Auto(), Bottom: css.Auto()}
}

// --- Cascaded value store --------------------------------------------------

// Declarations is the cascaded value store the style computer consumes.
// Selector matching and specificity resolution happen upstream; this store
// holds the winning declaration per element and aggregate. Elements without
// an entry for a group have no declaration for any of the group's
// sub-properties.
type Declarations struct {
	all          map[dom.NodeIndex]CVKind
	box          map[dom.NodeIndex]BoxStyle
	width        map[dom.NodeIndex]ContentSize
	height       map[dom.NodeIndex]ContentSize
	hEdges       map[dom.NodeIndex]Edges
	vEdges       map[dom.NodeIndex]Edges
	zindex       map[dom.NodeIndex]ZIndex
	insets       map[dom.NodeIndex]Insets
	borderColors map[dom.NodeIndex]BorderColors
	background   map[dom.NodeIndex]Background
	color        map[dom.NodeIndex]TextColor
}

// NewDeclarations creates an empty cascaded value store.
func NewDeclarations() *Declarations {
	return &Declarations{
		all:          make(map[dom.NodeIndex]CVKind),
		box:          make(map[dom.NodeIndex]BoxStyle),
		width:        make(map[dom.NodeIndex]ContentSize),
		height:       make(map[dom.NodeIndex]ContentSize),
		hEdges:       make(map[dom.NodeIndex]Edges),
		vEdges:       make(map[dom.NodeIndex]Edges),
		zindex:       make(map[dom.NodeIndex]ZIndex),
		insets:       make(map[dom.NodeIndex]Insets),
		borderColors: make(map[dom.NodeIndex]BorderColors),
		background:   make(map[dom.NodeIndex]Background),
		color:        make(map[dom.NodeIndex]TextColor),
	}
}

// SetAll declares the 'all' shorthand for an element. Only the CSS-wide
// keywords are legal values.
func (d *Declarations) SetAll(e dom.NodeIndex, k CVKind) {
	d.all[e] = k
}

func (d *Declarations) SetBoxStyle(e dom.NodeIndex, v BoxStyle) { d.box[e] = v }

func (d *Declarations) SetWidth(e dom.NodeIndex, v ContentSize) { d.width[e] = v }

func (d *Declarations) SetHeight(e dom.NodeIndex, v ContentSize) { d.height[e] = v }

func (d *Declarations) SetHorizontalEdges(e dom.NodeIndex, v Edges) { d.hEdges[e] = v }

func (d *Declarations) SetVerticalEdges(e dom.NodeIndex, v Edges) { d.vEdges[e] = v }

func (d *Declarations) SetZIndex(e dom.NodeIndex, v ZIndex) { d.zindex[e] = v }

func (d *Declarations) SetInsets(e dom.NodeIndex, v Insets) { d.insets[e] = v }

func (d *Declarations) SetBorderColors(e dom.NodeIndex, v BorderColors) { d.borderColors[e] = v }

func (d *Declarations) SetBackground(e dom.NodeIndex, v Background) { d.background[e] = v }

func (d *Declarations) SetColor(e dom.NodeIndex, v TextColor) { d.color[e] = v }
