/*
Package inline implements inline formatting contexts.

An IFC is a run of inline-level content encoded as two parallel arrays:
glyph indices and per-glyph metrics. A glyph index of 0 is a sentinel:
the following slot carries a special marker (16-bit kind, 16-bit data)
representing a non-glyph event, such as an inline-box boundary or an
embedded inline-block. Line splitting is greedy, left to right.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'visfmt.frame.inline'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.frame.inline")
}
