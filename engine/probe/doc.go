/*
Package probe decides whether a font supplies a glyph for a character.

The decision is a heuristic: a character is rendered (measured) twice, once
with the font stack `family, fallback` and once with the fallback alone. If
the two boxes differ in width or height, the family font has contributed a
glyph. Fonts which happen to have a glyph of exactly the fallback's
dimensions are reported as not supporting it, so results are approximate.
No inspection of a font's cmap table is done for the decision.

Measuring is abstracted as a TextMeasurer. FaceMeasurer measures with the
fonts of a font registry, emulating the fallback behaviour of a browser:
each character is taken from the first font of the stack which has a glyph
for it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package probe

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.glyphs")
}
