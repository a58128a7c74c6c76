package frame

import (
	"github.com/npillmayer/visfmt/core"
	"github.com/npillmayer/visfmt/core/dimen"
	"github.com/npillmayer/visfmt/engine/dom/style"
	"github.com/npillmayer/visfmt/engine/dom/style/css"
)

// BlockComputedSizes bundles the computed properties a block needs for
// size resolution.
type BlockComputedSizes struct {
	Width  style.ComputedSize
	Height style.ComputedSize
	HEdges style.ComputedEdges
	VEdges style.ComputedEdges
}

// ComputedSizesOf extracts the size-relevant aggregates from a computed
// style set.
func ComputedSizesOf(s *style.Styles) BlockComputedSizes {
	return BlockComputedSizes{
		Width:  s.Width,
		Height: s.Height,
		HEdges: s.HEdges,
		VEdges: s.VEdges,
	}
}

// UsedField tags the four used values which carry an auto flag.
type UsedField uint8

const (
	FieldInlineSize UsedField = iota
	FieldMarginInlineStart
	FieldMarginInlineEnd
	FieldBlockSize
)

// BlockUsedSizes is the used-value record of a block box. The four tagged
// fields each carry an auto bit; a set auto bit zeroes the value.
type BlockUsedSizes struct {
	BorderInlineStart, BorderInlineEnd   dimen.DU
	PaddingInlineStart, PaddingInlineEnd dimen.DU
	MarginInlineStart, MarginInlineEnd   dimen.DU
	InlineSize                           dimen.DU
	MinInlineSize, MaxInlineSize         dimen.DU

	BorderBlockStart, BorderBlockEnd   dimen.DU
	PaddingBlockStart, PaddingBlockEnd dimen.DU
	MarginBlockStart, MarginBlockEnd   dimen.DU
	BlockSize                          dimen.DU
	MinBlockSize, MaxBlockSize         dimen.DU

	autoBits uint8
}

func (u *BlockUsedSizes) fieldPtr(f UsedField) *dimen.DU {
	switch f {
	case FieldInlineSize:
		return &u.InlineSize
	case FieldMarginInlineStart:
		return &u.MarginInlineStart
	case FieldMarginInlineEnd:
		return &u.MarginInlineEnd
	}
	return &u.BlockSize
}

// Set stores a used value and clears the field's auto bit.
func (u *BlockUsedSizes) Set(f UsedField, v dimen.DU) {
	*u.fieldPtr(f) = v
	u.autoBits &^= 1 << f
}

// SetAuto flags a field as auto and zeroes its value.
func (u *BlockUsedSizes) SetAuto(f UsedField) {
	*u.fieldPtr(f) = 0
	u.autoBits |= 1 << f
}

// IsAuto returns the auto bit of a field.
func (u *BlockUsedSizes) IsAuto(f UsedField) bool {
	return u.autoBits&(1<<f) > 0
}

// Get returns the used value of a field, or false if the field is auto.
func (u *BlockUsedSizes) Get(f UsedField) (dimen.DU, bool) {
	if u.IsAuto(f) {
		return 0, false
	}
	return *u.fieldPtr(f), true
}

// EdgesInline returns the total inline-axis border and padding.
func (u *BlockUsedSizes) EdgesInline() dimen.DU {
	return u.BorderInlineStart + u.BorderInlineEnd + u.PaddingInlineStart + u.PaddingInlineEnd
}

// EdgesBlock returns the total block-axis border and padding.
func (u *BlockUsedSizes) EdgesBlock() dimen.DU {
	return u.BorderBlockStart + u.BorderBlockEnd + u.PaddingBlockStart + u.PaddingBlockEnd
}

// OuterInlineSize returns margin-box width; only valid once the inline
// fields have been resolved.
func (u *BlockUsedSizes) OuterInlineSize() dimen.DU {
	return u.MarginInlineStart + u.EdgesInline() + u.InlineSize + u.MarginInlineEnd
}

// ClampBlockSize applies the min/max block-size bounds to h.
func (u *BlockUsedSizes) ClampBlockSize(h dimen.DU) dimen.DU {
	return dimen.Clamp(h, u.MinBlockSize, u.MaxBlockSize)
}

// --- Resolution ------------------------------------------------------------

// usedBorderWidth returns the used width of one border: zero when the
// border style suppresses it, the computed width otherwise.
func usedBorderWidth(bs style.BorderStyleProp, w css.DimenT, basis dimen.DU) (dimen.DU, error) {
	if !bs.IsVisible() {
		return 0, nil
	}
	v, ok := w.Resolve(basis)
	if !ok {
		v = css.Medium
	}
	if v < 0 {
		return 0, core.Error(core.EINVALID, "negative border width")
	}
	return v, nil
}

func usedPadding(p css.DimenT, basis dimen.DU) (dimen.DU, error) {
	v, ok := p.Resolve(basis)
	if !ok {
		return 0, nil
	}
	if v < 0 {
		return 0, core.Error(core.EINVALID, "negative padding")
	}
	return v, nil
}

// SolveWidths resolves the inline-axis used values of spec against a
// containing block of width W, then distributes the remaining space
// according to CSS 2.2 §10.3.3 (see AdjustInlineMargins).
func SolveWidths(spec BlockComputedSizes, W dimen.DU, used *BlockUsedSizes) error {
	if err := SolveEdges(spec, W, used); err != nil {
		return err
	}
	AdjustInlineMargins(used, W)
	return nil
}

// SolveEdges resolves borders, paddings, size bounds, the specified size
// and margins of the inline axis, without distributing leftover space.
// Auto fields keep their auto tag with a zeroed value; shrink-to-fit
// contexts use them as 0.
func SolveEdges(spec BlockComputedSizes, W dimen.DU, used *BlockUsedSizes) (err error) {
	if used.BorderInlineStart, err = usedBorderWidth(spec.HEdges.BorderStartStyle, spec.HEdges.BorderStartWidth, W); err != nil {
		return err
	}
	if used.BorderInlineEnd, err = usedBorderWidth(spec.HEdges.BorderEndStyle, spec.HEdges.BorderEndWidth, W); err != nil {
		return err
	}
	if used.PaddingInlineStart, err = usedPadding(spec.HEdges.PaddingStart, W); err != nil {
		return err
	}
	if used.PaddingInlineEnd, err = usedPadding(spec.HEdges.PaddingEnd, W); err != nil {
		return err
	}
	if used.MinInlineSize, used.MaxInlineSize, err = minMax(spec.Width, W, true); err != nil {
		return err
	}
	if v, ok := spec.Width.Size.Resolve(W); ok {
		if v < 0 {
			return core.Error(core.EINVALID, "negative width")
		}
		used.Set(FieldInlineSize, dimen.Clamp(v, used.MinInlineSize, used.MaxInlineSize))
	} else {
		used.SetAuto(FieldInlineSize)
	}
	if v, ok := spec.HEdges.MarginStart.Resolve(W); ok {
		used.Set(FieldMarginInlineStart, v)
	} else {
		used.SetAuto(FieldMarginInlineStart)
	}
	if v, ok := spec.HEdges.MarginEnd.Resolve(W); ok {
		used.Set(FieldMarginInlineEnd, v)
	} else {
		used.SetAuto(FieldMarginInlineEnd)
	}
	return nil
}

// AdjustInlineMargins distributes the containing block's inline space over
// width and margins (CSS 2.2 §10.3.3):
//
//   - Over-constrained boxes push the excess into the end margin, which may
//     go negative.
//   - Auto margins split the non-negative leftover; with both margins auto
//     the end margin receives the odd unit.
//   - An auto width takes the leftover, clamped to min/max; margins keep
//     their resolved values.
func AdjustInlineMargins(used *BlockUsedSizes, W dimen.DU) {
	edges := used.EdgesInline()
	switch {
	case !used.IsAuto(FieldInlineSize) && !used.IsAuto(FieldMarginInlineStart) && !used.IsAuto(FieldMarginInlineEnd):
		used.Set(FieldMarginInlineEnd, W-edges-used.InlineSize-used.MarginInlineStart)
	case !used.IsAuto(FieldInlineSize):
		leftover := dimen.Max(0, W-edges-used.InlineSize-used.MarginInlineStart-used.MarginInlineEnd)
		if used.IsAuto(FieldMarginInlineStart) && used.IsAuto(FieldMarginInlineEnd) {
			used.Set(FieldMarginInlineStart, leftover/2)
			used.Set(FieldMarginInlineEnd, leftover/2+leftover%2)
		} else if used.IsAuto(FieldMarginInlineStart) {
			used.Set(FieldMarginInlineStart, leftover)
		} else {
			used.Set(FieldMarginInlineEnd, leftover)
		}
	default:
		w := W - edges - used.MarginInlineStart - used.MarginInlineEnd
		used.Set(FieldInlineSize, dimen.Clamp(w, used.MinInlineSize, used.MaxInlineSize))
	}
}

// SolveHeights resolves the block-axis used values of spec. Percentages of
// padding and margins resolve against the containing block's width W;
// percentage heights resolve against H only when H is known and become
// auto otherwise. Auto block-axis margins are used as 0.
func SolveHeights(spec BlockComputedSizes, W dimen.DU, H css.DimenT, used *BlockUsedSizes) (err error) {
	if used.BorderBlockStart, err = usedBorderWidth(spec.VEdges.BorderStartStyle, spec.VEdges.BorderStartWidth, W); err != nil {
		return err
	}
	if used.BorderBlockEnd, err = usedBorderWidth(spec.VEdges.BorderEndStyle, spec.VEdges.BorderEndWidth, W); err != nil {
		return err
	}
	if used.PaddingBlockStart, err = usedPadding(spec.VEdges.PaddingStart, W); err != nil {
		return err
	}
	if used.PaddingBlockEnd, err = usedPadding(spec.VEdges.PaddingEnd, W); err != nil {
		return err
	}
	basis := dimen.Zero
	haveBasis := H.IsAbsolute()
	if haveBasis {
		basis = H.Unwrap()
	}
	if used.MinBlockSize, used.MaxBlockSize, err = minMax(spec.Height, basis, haveBasis); err != nil {
		return err
	}
	size := spec.Height.Size
	switch {
	case size.IsAbsolute():
		v := size.Unwrap()
		if v < 0 {
			return core.Error(core.EINVALID, "negative height")
		}
		used.Set(FieldBlockSize, v)
	case size.IsPercent() && haveBasis:
		v, _ := size.Resolve(basis)
		if v < 0 {
			return core.Error(core.EINVALID, "negative height")
		}
		used.Set(FieldBlockSize, v)
	default:
		used.SetAuto(FieldBlockSize)
	}
	if v, ok := spec.VEdges.MarginStart.Resolve(W); ok {
		used.MarginBlockStart = v
	}
	if v, ok := spec.VEdges.MarginEnd.Resolve(W); ok {
		used.MarginBlockEnd = v
	}
	return nil
}

// minMax resolves min/max bounds; an unresolvable percentage degrades to
// the bound's neutral value, 'none' maps to Infinity.
func minMax(cs style.ComputedSize, basis dimen.DU, haveBasis bool) (min, max dimen.DU, err error) {
	min, max = 0, dimen.Infinity
	if cs.Min.IsAbsolute() || (cs.Min.IsPercent() && haveBasis) {
		min, _ = cs.Min.Resolve(basis)
	}
	if cs.Max.IsAbsolute() || (cs.Max.IsPercent() && haveBasis) {
		max, _ = cs.Max.Resolve(basis)
	}
	if min < 0 || max < 0 {
		return 0, 0, core.Error(core.EINVALID, "negative size bound")
	}
	return min, max, nil
}
