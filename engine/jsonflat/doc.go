/*
Package jsonflat flattens JSON documents into key/value lists.

Typical input is a translation file: nested objects of strings. Nested
objects are flattened to dotted keys, in document order. Everything else
is converted to a string: arrays become the comma-joined list of their
elements, numbers keep their textual representation, and null becomes
"null". Flattened entries may be filtered by a search term and exported
as CSV.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package jsonflat

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.json'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.json")
}
