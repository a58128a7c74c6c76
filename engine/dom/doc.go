/*
Package dom implements the element tree consumed by the formatter.

Elements live in a flat pre-order store. Every element carries a skip,
i.e. the size of its subtree including itself, which makes sibling
iteration an O(1) index jump and keeps the tree free of pointers.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'visfmt.dom'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.dom")
}
