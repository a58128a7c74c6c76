/*
Package boxtree implements the geometric output tree of the formatter.

The box tree is a forest of subtrees. Each subtree stores its blocks in
parallel columnar arrays indexed by BlockIndex, in pre-order, with a skip
per block. Subtrees compose through proxy entries: a proxy is a leaf in
its host subtree and points to the root of another subtree, so a subtree
built in isolation can be attached without renumbering.

All columns are append-only during a layout pass; entries are never
deleted or reordered.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package boxtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'visfmt.frame.box'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.frame.box")
}
