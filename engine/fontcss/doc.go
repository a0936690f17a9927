/*
Package fontcss extracts font information from CSS stylesheets.

Hosted font services like Google Fonts or Adobe Typekit deliver a stylesheet
with one @font-face rule per family, weight, style and unicode range. This
package collects these rules into a FontInfo per family, keeping the order
in which the families appear in the stylesheet. It also finds the stylesheet
links of HTML embed snippets, as offered by these services for copy & paste.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontcss

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'glyphscope.loader'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.loader")
}
