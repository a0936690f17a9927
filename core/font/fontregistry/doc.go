/*
Package fontregistry manages a registry for loaded fonts.

Fonts are stored under a normalized name, which is derived from the
family name plus indicators for style and weight (see NormalizeFontname).
Clients will usually ask for a type case by family, style and weight; the
registry then selects the closest font it knows of for that family.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphscope.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.fonts")
}
