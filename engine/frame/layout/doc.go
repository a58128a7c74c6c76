/*
Package layout drives the visual formatting of an element tree.

The driver runs normal-flow block layout over the element tree, handing
inline-level runs to the inline-formatting builder and inline-blocks to
the shrink-to-fit engine. Layout is single-threaded and runs to
completion or terminal error; on error no partial box tree is usable.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'visfmt.layout'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.layout")
}
