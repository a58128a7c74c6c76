/*
Package frame implements the CSS box model for the visual formatter.

Boxes follow the CSS box model: a content rectangle wrapped in padding,
border and margins. The package resolves specified sizes and edges into
used values against a containing block, including the auto-width and
auto-margin rules of CSS 2.2 §10.3.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to the engine tracer.
func T() tracing.Trace {
	return gtrace.EngineTracer
}
