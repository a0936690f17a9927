/*
Package preview renders a sample text with the selected font.

A preview reports the box of the sample text at a few pixel sizes, and,
for every grapheme cluster of the text, whether the selected family or
the fallback family supplies its glyphs. Grapheme clusters are found with
package uniseg, so combining sequences and emoji are treated as single
user-perceived characters.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package preview

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.glyphs")
}
