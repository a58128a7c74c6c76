package html

import (
	"strconv"
	"strings"

	"github.com/npillmayer/visfmt/engine/dom"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
)

// setDeclarations converts property strings to the typed aggregate groups
// of the cascaded value store. Unknown properties and values are dropped,
// as a browser would drop them; unknown display values, unparsable
// dimensions and unknown colors are reported with a trace message.
func setDeclarations(decls *style.Declarations, e dom.NodeIndex, props map[string]string) {
	expandShorthands(props)
	//
	if v, ok := props["all"]; ok {
		if k, ok := wideKeyword(v); ok {
			decls.SetAll(e, k)
		}
	}
	var box style.BoxStyle
	boxSet := false
	if v, ok := props["display"]; ok {
		box.Display = displayValue(v)
		boxSet = true
	}
	if v, ok := props["position"]; ok {
		box.Position = positionValue(v)
		boxSet = true
	}
	if v, ok := props["float"]; ok {
		box.Float = floatValue(v)
		boxSet = true
	}
	if boxSet {
		decls.SetBoxStyle(e, box)
	}
	if cs, ok := sizeGroup(props, "width", "min-width", "max-width"); ok {
		decls.SetWidth(e, cs)
	}
	if cs, ok := sizeGroup(props, "height", "min-height", "max-height"); ok {
		decls.SetHeight(e, cs)
	}
	if ed, ok := edgesGroup(props, "left", "right"); ok {
		decls.SetHorizontalEdges(e, ed)
	}
	if ed, ok := edgesGroup(props, "top", "bottom"); ok {
		decls.SetVerticalEdges(e, ed)
	}
	if v, ok := props["z-index"]; ok {
		decls.SetZIndex(e, style.ZIndex{Z: zIndexValue(v)})
	}
	if in, ok := insetsGroup(props); ok {
		decls.SetInsets(e, in)
	}
	if bc, ok := borderColorsGroup(props); ok {
		decls.SetBorderColors(e, bc)
	}
	if v, ok := props["background-color"]; ok {
		if c, ok := colorValue(v); ok {
			decls.SetBackground(e, style.Background{Color: style.Set(c)})
		}
	}
	if v, ok := props["color"]; ok {
		if c, ok := colorValue(v); ok {
			decls.SetColor(e, style.TextColor{Color: style.Set(c)})
		}
	}
}

// expandShorthands rewrites margin/padding/border shorthands into their
// longhand properties, not overriding explicit longhands.
func expandShorthands(props map[string]string) {
	expandBoxShorthand(props, "margin")
	expandBoxShorthand(props, "padding")
	if v, ok := props["border"]; ok {
		w, s, c := splitBorderShorthand(v)
		for _, side := range [4]string{"top", "right", "bottom", "left"} {
			putIfAbsent(props, "border-"+side+"-width", w)
			putIfAbsent(props, "border-"+side+"-style", s)
			putIfAbsent(props, "border-"+side+"-color", c)
		}
	}
	if v, ok := props["border-width"]; ok {
		vals := fourValues(v)
		for i, side := range [4]string{"top", "right", "bottom", "left"} {
			putIfAbsent(props, "border-"+side+"-width", vals[i])
		}
	}
	if v, ok := props["border-style"]; ok {
		vals := fourValues(v)
		for i, side := range [4]string{"top", "right", "bottom", "left"} {
			putIfAbsent(props, "border-"+side+"-style", vals[i])
		}
	}
	if v, ok := props["border-color"]; ok {
		vals := fourValues(v)
		for i, side := range [4]string{"top", "right", "bottom", "left"} {
			putIfAbsent(props, "border-"+side+"-color", vals[i])
		}
	}
}

func expandBoxShorthand(props map[string]string, name string) {
	v, ok := props[name]
	if !ok {
		return
	}
	vals := fourValues(v)
	for i, side := range [4]string{"top", "right", "bottom", "left"} {
		putIfAbsent(props, name+"-"+side, vals[i])
	}
}

// fourValues applies the CSS 1-to-4 value expansion: top, right, bottom,
// left.
func fourValues(v string) [4]string {
	f := strings.Fields(v)
	switch len(f) {
	case 1:
		return [4]string{f[0], f[0], f[0], f[0]}
	case 2:
		return [4]string{f[0], f[1], f[0], f[1]}
	case 3:
		return [4]string{f[0], f[1], f[2], f[1]}
	case 4:
		return [4]string{f[0], f[1], f[2], f[3]}
	}
	return [4]string{}
}

// splitBorderShorthand picks width, style and color out of a border
// shorthand by value shape.
func splitBorderShorthand(v string) (w, s, c string) {
	for _, f := range strings.Fields(v) {
		switch {
		case isBorderStyle(f):
			s = f
		case isLengthOrKeywordWidth(f):
			w = f
		default:
			c = f
		}
	}
	return w, s, c
}

func isBorderStyle(v string) bool {
	switch v {
	case "none", "hidden", "solid", "dotted", "dashed", "double":
		return true
	}
	return false
}

func isLengthOrKeywordWidth(v string) bool {
	switch v {
	case "thin", "medium", "thick":
		return true
	}
	_, err := css.ParseDimen(v)
	return err == nil && v != ""
}

func putIfAbsent(props map[string]string, key, val string) {
	if val == "" {
		return
	}
	if _, ok := props[key]; !ok {
		props[key] = val
	}
}

// --- Value parsing ---------------------------------------------------------

func wideKeyword(v string) (style.CVKind, bool) {
	switch v {
	case "initial":
		return style.Initial, true
	case "inherit":
		return style.Inherit, true
	case "unset":
		return style.Unset, true
	}
	return style.Undeclared, false
}

func displayValue(v string) style.CV[style.DisplayProp] {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[style.DisplayProp](k)
	}
	switch v {
	case "block":
		return style.Set(style.DisplayBlock)
	case "inline":
		return style.Set(style.DisplayInline)
	case "inline-block":
		return style.Set(style.DisplayInlineBlock)
	case "none":
		return style.Set(style.DisplayNone)
	}
	tracer().Debugf("dropping unsupported display value '%s'", v)
	return style.CV[style.DisplayProp]{}
}

func positionValue(v string) style.CV[style.PositionProp] {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[style.PositionProp](k)
	}
	switch v {
	case "static":
		return style.Set(style.PositionStatic)
	case "relative":
		return style.Set(style.PositionRelative)
	case "absolute":
		return style.Set(style.PositionAbsolute)
	case "fixed":
		return style.Set(style.PositionFixed)
	case "sticky":
		return style.Set(style.PositionSticky)
	}
	return style.CV[style.PositionProp]{}
}

func floatValue(v string) style.CV[style.FloatProp] {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[style.FloatProp](k)
	}
	switch v {
	case "none":
		return style.Set(style.FloatNone)
	case "left":
		return style.Set(style.FloatLeft)
	case "right":
		return style.Set(style.FloatRight)
	}
	return style.CV[style.FloatProp]{}
}

func dimenValue(v string) style.CV[css.DimenT] {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[css.DimenT](k)
	}
	d, err := css.ParseDimen(v)
	if err != nil {
		tracer().Debugf("dropping unparsable dimension '%s'", v)
		return style.CV[css.DimenT]{}
	}
	return style.Set(d)
}

func borderWidthValue(v string) style.CV[css.DimenT] {
	switch v {
	case "thin", "medium", "thick":
		return style.Set(css.BorderWidthKeyword(v))
	}
	return dimenValue(v)
}

func borderStyleValue(v string) style.CV[style.BorderStyleProp] {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[style.BorderStyleProp](k)
	}
	switch v {
	case "none":
		return style.Set(style.BorderNone)
	case "hidden":
		return style.Set(style.BorderHidden)
	case "solid":
		return style.Set(style.BorderSolid)
	case "dotted":
		return style.Set(style.BorderDotted)
	case "dashed":
		return style.Set(style.BorderDashed)
	case "double":
		return style.Set(style.BorderDouble)
	}
	return style.CV[style.BorderStyleProp]{}
}

func zIndexValue(v string) style.CV[style.ZIndexT] {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[style.ZIndexT](k)
	}
	if v == "auto" {
		return style.Set(style.ZAuto())
	}
	z, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return style.CV[style.ZIndexT]{}
	}
	return style.Set(style.ZInt(int32(z)))
}

func sizeGroup(props map[string]string, size, min, max string) (style.ContentSize, bool) {
	var cs style.ContentSize
	any := false
	if v, ok := props[size]; ok {
		cs.Size = dimenValue(v)
		any = true
	}
	if v, ok := props[min]; ok {
		cs.Min = dimenValue(v)
		any = true
	}
	if v, ok := props[max]; ok {
		cs.Max = dimenValue(v)
		any = true
	}
	return cs, any
}

func edgesGroup(props map[string]string, start, end string) (style.Edges, bool) {
	var ed style.Edges
	any := false
	if v, ok := props["padding-"+start]; ok {
		ed.PaddingStart = dimenValue(v)
		any = true
	}
	if v, ok := props["padding-"+end]; ok {
		ed.PaddingEnd = dimenValue(v)
		any = true
	}
	if v, ok := props["border-"+start+"-style"]; ok {
		ed.BorderStartStyle = borderStyleValue(v)
		any = true
	}
	if v, ok := props["border-"+end+"-style"]; ok {
		ed.BorderEndStyle = borderStyleValue(v)
		any = true
	}
	if v, ok := props["border-"+start+"-width"]; ok {
		ed.BorderStartWidth = borderWidthValue(v)
		any = true
	}
	if v, ok := props["border-"+end+"-width"]; ok {
		ed.BorderEndWidth = borderWidthValue(v)
		any = true
	}
	if v, ok := props["margin-"+start]; ok {
		ed.MarginStart = dimenValue(v)
		any = true
	}
	if v, ok := props["margin-"+end]; ok {
		ed.MarginEnd = dimenValue(v)
		any = true
	}
	return ed, any
}

func insetsGroup(props map[string]string) (style.Insets, bool) {
	var in style.Insets
	any := false
	if v, ok := props["left"]; ok {
		in.Left = dimenValue(v)
		any = true
	}
	if v, ok := props["right"]; ok {
		in.Right = dimenValue(v)
		any = true
	}
	if v, ok := props["top"]; ok {
		in.Top = dimenValue(v)
		any = true
	}
	if v, ok := props["bottom"]; ok {
		in.Bottom = dimenValue(v)
		any = true
	}
	return in, any
}

func borderColorsGroup(props map[string]string) (style.BorderColors, bool) {
	var bc style.BorderColors
	any := false
	if v, ok := props["border-left-color"]; ok {
		if c, ok := colorTValue(v); ok {
			bc.Left = c
			any = true
		}
	}
	if v, ok := props["border-right-color"]; ok {
		if c, ok := colorTValue(v); ok {
			bc.Right = c
			any = true
		}
	}
	if v, ok := props["border-top-color"]; ok {
		if c, ok := colorTValue(v); ok {
			bc.Top = c
			any = true
		}
	}
	if v, ok := props["border-bottom-color"]; ok {
		if c, ok := colorTValue(v); ok {
			bc.Bottom = c
			any = true
		}
	}
	return bc, any
}

func colorTValue(v string) (style.CV[style.ColorT], bool) {
	if k, ok := wideKeyword(v); ok {
		return style.Keyword[style.ColorT](k), true
	}
	if v == "currentColor" || v == "currentcolor" {
		return style.Set(style.CurrentColor()), true
	}
	if c, ok := parseColor(v); ok {
		return style.Set(style.SomeColor(c)), true
	}
	return style.CV[style.ColorT]{}, false
}

func colorValue(v string) (style.ColorT, bool) {
	if v == "currentColor" || v == "currentcolor" {
		return style.CurrentColor(), true
	}
	if c, ok := parseColor(v); ok {
		return style.SomeColor(c), true
	}
	return style.ColorT{}, false
}

// parseColor understands hex notation and a handful of named colors.
func parseColor(v string) (style.Color, bool) {
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v[1:])
	}
	switch v {
	case "black":
		return style.Black, true
	case "white":
		return style.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, true
	case "red":
		return style.Color{R: 0xff, A: 0xff}, true
	case "green":
		return style.Color{G: 0x80, A: 0xff}, true
	case "blue":
		return style.Color{B: 0xff, A: 0xff}, true
	case "transparent":
		return style.Transparent, true
	}
	tracer().Debugf("dropping unknown color '%s'", v)
	return style.Color{}, false
}

func parseHexColor(hex string) (style.Color, bool) {
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return style.Color{}, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return style.Color{}, false
	}
	return style.Color{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}, true
}
