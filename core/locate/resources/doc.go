/*
Package resources resolves fonts and downloads for the application.

Font files referenced by hosted stylesheets are downloaded into a cache folder
below the user's cache directory. Fonts may also be located on the local
system, either by file name (go-findfont) or through the fontconfig
`fc-list` binary, or found in the Google Fonts directory.

As resource loading may be a time-consuming task, some functions in this
package will work in an async/await fashion by returning a promise.
Functions named

   Resolve…(…)

will return a resource-specific promise type, which the client will call later
to receive the loaded resource. The call to the promise-function will then block
until loading has completed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'glyphscope.resources'.
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.resources")
}
