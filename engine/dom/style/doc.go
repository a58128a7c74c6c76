/*
Package style implements CSS property groups and the style computer.

Cascaded values arrive from a selector-matching front end, grouped by
property aggregates. The style computer walks the element tree and turns
cascaded values into computed values, maintaining one inheritance stack
per aggregate.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'visfmt.style'.
func tracer() tracing.Trace {
	return tracing.Select("visfmt.style")
}
