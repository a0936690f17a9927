/*
Package session holds the font context of an interactive glyphscope session.

A session knows the currently selected font family (together with weight
and style), where the font came from, the families found in a loaded
stylesheet, and the last error to present to the user. Every successful
font load bumps the generation of the session and restarts the glyph scan
for the new selection; glyphs found so far are accessible through a
filtered view.

Fonts are held in a font registry, which always contains the generic
fallback family (probe.FallbackFamily) the glyph probe compares against.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.session'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.session")
}
