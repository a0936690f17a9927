/*
Package scan drives the glyph probe over all candidate code points.

A scan runs in its own goroutine and works through the candidates in
batches. After each batch the accumulated records are published to
observers as an immutable snapshot, and the scanner pauses for a short
delay before starting the next batch. Every scan is tagged with a
generation number; starting a new scan (or cancelling) supersedes all
older ones, and results of a superseded scan are never published.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scan

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.scan'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.scan")
}
