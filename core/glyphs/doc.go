/*
Package glyphs holds the static knowledge about characters we test fonts for.

It provides the fixed, ordered list of candidate code points, a classifier
assigning a human readable name and a category to each candidate, the
record type for characters found to be supported by a font, and the
filter projection used to narrow down a collection of records.

Nothing in this package touches fonts. Deciding whether a font supports
a candidate is the job of package probe; driving the decision over the
whole candidate list is the job of package scan.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphs

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'glyphscope.glyphs'
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.glyphs")
}
