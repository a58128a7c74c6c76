package frame

import "github.com/npillmayer/visfmt/engine/dom/style"

// EffectiveDisplay maps a computed display value to the effective one used
// for box generation (CSS 2.2 §9.7): the root of a layout run always
// establishes a block, so inline-level displays convert to block there.
// 'none' stays 'none' everywhere.
func EffectiveDisplay(d style.DisplayProp, atRoot bool) style.DisplayProp {
	if !atRoot || d == style.DisplayNone {
		return d
	}
	return style.DisplayBlock
}
