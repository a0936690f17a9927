/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "typecase" is a scaled font, i.e. a font in a certain size.
The name is reminiscend on the wooden boxes of typesetters in the aera
of metal type. An example is "Helvetica regular 32px".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

We read TrueType and OpenType fonts with golang.org/x/image/font/sfnt.
WOFF (version 1) fonts are read with github.com/go-text/typesetting,
which decompresses the WOFF tables on the fly. WOFF2 fonts are recognized,
but not supported, as there is no pure-Go Brotli decoder in our stack.

Sizes of type cases are in pixels: we measure the way a browser does,
with 1pt == 1px (72 DPI).

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-22, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'glyphscope.fonts'
func tracer() tracing.Trace {
	return tracing.Select("glyphscope.fonts")
}

// ScalableFont is a font loaded from a font file or from a binary blob.
// Exactly one of SFNT and woff is set, depending on the format.
type ScalableFont struct {
	Fontname string       // full name of the font, if present
	Family   string       // family name as stored in the font
	Filepath string       // file path
	Binary   []byte       // raw data
	Format   Format       // container format
	SFNT     *sfnt.Font   // the font's container for TrueType/OpenType
	woff     *gotext.Face // the font's container for WOFF
}

// TypeCase is a scalable font at a given pixel size.
// It is safe for concurrent use.
type TypeCase struct {
	sync.Mutex
	scalableFontParent *ScalableFont
	face               xfont.Face // Go uses 'face' and 'font' in an inverse manner
	buf                sfnt.Buffer
	size               float64
}

// LoadOpenTypeFont loads a font from a file. Despite its name, it
// will read any font format ParseOpenTypeFont understands.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont parses a binary font. Supported formats are TrueType,
// OpenType (CFF), TrueType collections (first font only) and WOFF.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes, Format: DetectFormat(fbytes)}
	switch f.Format {
	case FormatTrueType, FormatOpenType:
		if f.SFNT, err = sfnt.Parse(f.Binary); err != nil {
			return nil, core.WrapError(err, core.EINVALID, "font cannot be parsed: %v", err)
		}
	case FormatCollection:
		var c *sfnt.Collection
		if c, err = sfnt.ParseCollection(f.Binary); err == nil {
			f.SFNT, err = c.Font(0)
		}
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "font collection cannot be parsed: %v", err)
		}
	case FormatWOFF:
		if f.woff, err = gotext.ParseTTF(bytes.NewReader(f.Binary)); err != nil {
			return nil, core.WrapError(err, core.EINVALID, "WOFF font cannot be parsed: %v", err)
		}
	case FormatWOFF2:
		return nil, core.Error(core.EUNSUPPORTED, "WOFF2 fonts are not supported, please use a .woff, .ttf or .otf file")
	default:
		return nil, core.Error(core.EINVALID, "not a font file")
	}
	f.readNames()
	tracer().Debugf("parsed %s font %q (family %q)", f.Format, f.Fontname, f.Family)
	return f, nil
}

func (sf *ScalableFont) readNames() {
	if sf.SFNT != nil {
		var buf sfnt.Buffer
		sf.Fontname, _ = sf.SFNT.Name(&buf, sfnt.NameIDFull)
		if sf.Family, _ = sf.SFNT.Name(&buf, sfnt.NameIDTypographicFamily); sf.Family == "" {
			sf.Family, _ = sf.SFNT.Name(&buf, sfnt.NameIDFamily)
		}
		return
	}
	sf.Family = sf.woff.Describe().Family
	sf.Fontname = sf.Family
}

// HasGlyph is a predicate: does the font map r to a glyph (other than .notdef)?
func (sf *ScalableFont) HasGlyph(r rune) bool {
	if sf.woff != nil {
		_, ok := sf.woff.NominalGlyph(r)
		return ok
	}
	var buf sfnt.Buffer
	gid, err := sf.SFNT.GlyphIndex(&buf, r)
	return err == nil && gid != 0
}

// PrepareCase creates a type case for a pixel size. Sizes outside of
// [5…500] are reset to 10px.
func (sf *ScalableFont) PrepareCase(fontsize float64) (*TypeCase, error) {
	typecase := &TypeCase{}
	typecase.scalableFontParent = sf
	if fontsize < 5.0 || fontsize > 500.0 {
		tracer().Errorf("font size must be 5px < size < 500px, is %g (set to 10px)", fontsize)
		fontsize = 10.0
	}
	typecase.size = fontsize
	if sf.woff != nil {
		return typecase, nil
	}
	options := &opentype.FaceOptions{
		Size:    fontsize,
		DPI:     72,
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot scale font %s", sf.Fontname)
	}
	typecase.face = f
	return typecase, nil
}

// ScalableFontParent returns the font a type case has been derived from.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// PtSize returns the size of the type case, in pixels (== points at 72 DPI).
func (tc *TypeCase) PtSize() float64 {
	return tc.size
}

// GlyphAdvance returns the horizontal advance of the glyph for r, in pixels.
// If the font does not contain a glyph for r, GlyphAdvance returns false.
func (tc *TypeCase) GlyphAdvance(r rune) (float64, bool) {
	tc.Lock()
	defer tc.Unlock()
	if woff := tc.scalableFontParent.woff; woff != nil {
		gid, ok := woff.NominalGlyph(r)
		if !ok {
			return 0, false
		}
		return tc.fromUnits(woff.HorizontalAdvance(gid)), true
	}
	adv, ok := tc.face.GlyphAdvance(r)
	return fromFixed(adv), ok
}

// NotdefAdvance returns the advance of the .notdef glyph, in pixels.
// This is what will be drawn for characters missing from every font
// in a stack.
func (tc *TypeCase) NotdefAdvance() float64 {
	tc.Lock()
	defer tc.Unlock()
	if woff := tc.scalableFontParent.woff; woff != nil {
		return tc.fromUnits(woff.HorizontalAdvance(0))
	}
	ppem := fixed.Int26_6(tc.size * 64)
	adv, err := tc.scalableFontParent.SFNT.GlyphAdvance(&tc.buf, 0, ppem, xfont.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(adv)
}

// Height returns the line box height for the type case, i.e. ascent plus
// descent, in pixels. Line gap is not included.
func (tc *TypeCase) Height() float64 {
	tc.Lock()
	defer tc.Unlock()
	if woff := tc.scalableFontParent.woff; woff != nil {
		ext, ok := woff.FontHExtents()
		if !ok {
			return tc.size
		}
		return tc.fromUnits(ext.Ascender - ext.Descender)
	}
	m := tc.face.Metrics()
	return fromFixed(m.Ascent + m.Descent)
}

func (tc *TypeCase) fromUnits(u float32) float64 {
	upem := tc.scalableFontParent.woff.Upem()
	if upem == 0 {
		return 0
	}
	return float64(u) * tc.size / float64(upem)
}

func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64
}

// --- Font formats ----------------------------------------------------------

// Format is the container format of a font file.
type Format int

// Font formats we are able to detect.
const (
	FormatUnknown Format = iota
	FormatTrueType
	FormatOpenType
	FormatCollection
	FormatWOFF
	FormatWOFF2
)

func (f Format) String() string {
	switch f {
	case FormatTrueType:
		return "truetype"
	case FormatOpenType:
		return "opentype"
	case FormatCollection:
		return "collection"
	case FormatWOFF:
		return "woff"
	case FormatWOFF2:
		return "woff2"
	}
	return "unknown"
}

// DetectFormat inspects the magic number of a binary font.
func DetectFormat(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "true":
		return FormatTrueType
	case "OTTO":
		return FormatOpenType
	case "ttcf":
		return FormatCollection
	case "wOFF":
		return FormatWOFF
	case "wOF2":
		return FormatWOFF2
	}
	return FormatUnknown
}

// FormatFromCSS maps a CSS `format(…)` hint to a font format.
func FormatFromCSS(hint string) Format {
	switch hint {
	case "truetype", "truetype-variations":
		return FormatTrueType
	case "opentype", "opentype-variations":
		return FormatOpenType
	case "collection":
		return FormatCollection
	case "woff", "woff-variations":
		return FormatWOFF
	case "woff2", "woff2-variations":
		return FormatWOFF2
	}
	return FormatUnknown
}

// Parseable is a predicate: are fonts of format f readable by ParseOpenTypeFont?
func (f Format) Parseable() bool {
	switch f {
	case FormatTrueType, FormatOpenType, FormatCollection, FormatWOFF:
		return true
	}
	return false
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		panic(fmt.Sprintf("cannot load default font: %v", err)) // this cannot happen
	}
	gofont.Fontname = "Go Sans"
	gofont.Filepath = "internal"
	return gofont
}
