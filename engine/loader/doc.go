/*
Package loader loads fonts from the sources a user may offer: a hosted
stylesheet (Google Fonts or Adobe Typekit), a font file, or a piece of CSS
containing @font-face rules.

Every loader downloads or reads the font binaries it finds, parses them and
registers them in a font registry under the family name the stylesheet (or
file name) declares. Loaders report the font selection to use next, but do
not hold any state of the current selection themselves, apart from the
family of the most recent file import.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package loader

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.loader'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.loader")
}
