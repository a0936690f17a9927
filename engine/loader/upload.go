package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AcceptedExtensions are the file extensions of font files we accept.
var AcceptedExtensions = []string{".woff2", ".woff", ".ttf", ".otf"}

// AcceptedMIMETypes are the media types of font files we accept.
var AcceptedMIMETypes = []string{
	"font/woff2",
	"font/woff",
	"font/ttf",
	"font/otf",
	"application/font-woff2",
	"application/font-woff",
	"application/x-font-ttf",
	"application/x-font-otf",
	"font/opentype",
	"font/truetype",
}

var fontFileExt = regexp.MustCompile(`(?i)\.(woff2?|[ot]tf)$`)

var wordSeparators = strings.NewReplacer("-", " ", "_", " ")

// ValidFontFile checks a file name and an (optional) media type. A file is
// accepted if either its extension or its media type denotes a font.
func ValidFontFile(name, mimeType string) error {
	if fontFileExt.MatchString(name) {
		return nil
	}
	for _, t := range AcceptedMIMETypes {
		if strings.EqualFold(t, mimeType) {
			return nil
		}
	}
	return core.Error(core.EINVALID, "Please select a valid font file (%s)",
		strings.Join(AcceptedExtensions, ", "))
}

// FamilyNameFromFile derives a family name from a font file name: the
// extension is removed, dashes and underscores become spaces, and words
// are capitalized.
func FamilyNameFromFile(name string) string {
	name = filepath.Base(name)
	name = fontFileExt.ReplaceAllString(name, "")
	name = wordSeparators.Replace(name)
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// FormatFromFileName returns the CSS format name for a font file name.
// Unknown extensions are taken as "truetype".
func FormatFromFileName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".woff2":
		return "woff2"
	case ".woff":
		return "woff"
	case ".otf":
		return "opentype"
	}
	return "truetype"
}

// UniqueFamily creates the family name an imported font is registered with.
func (l *Loader) UniqueFamily(familyName string) string {
	dashed := strings.Join(strings.Fields(familyName), "-")
	return fmt.Sprintf("imported-%d-%s", l.now().UnixMilli(), dashed)
}

// ImportFile loads a font file from disk. See ImportFont.
func (l *Loader) ImportFile(path string) (*Result, error) {
	if err := ValidFontFile(path, ""); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "Failed to load font file")
	}
	return l.ImportFont(filepath.Base(path), data, "")
}

// ImportFont registers a font from binary data under a unique family name
// derived from the file name. The font of the previous import is removed
// from the registry.
func (l *Loader) ImportFont(name string, data []byte, mimeType string) (*Result, error) {
	if err := ValidFontFile(name, mimeType); err != nil {
		return nil, err
	}
	format := FormatFromFileName(name)
	f, err := font.ParseOpenTypeFont(data)
	if err != nil {
		tracer().Errorf("cannot parse %s font %s: %v", format, name, err)
		if core.Code(err) == core.EUNSUPPORTED {
			return nil, err
		}
		return nil, core.WrapError(err, core.EINVALID, "Failed to load font file")
	}
	family := l.UniqueFamily(FamilyNameFromFile(name))
	l.mutex.Lock()
	previous := l.imported
	l.imported = family
	l.mutex.Unlock()
	if previous != "" {
		l.registry.RemoveFamily(previous)
	}
	l.register(family, "400", "normal", f)
	return &Result{
		Source: SourceImport,
		Family: family,
		Weight: "400",
		Style:  "normal",
		Faces:  1,
	}, nil
}

// ForgetImport removes the font of the most recent import from the registry.
func (l *Loader) ForgetImport() {
	l.mutex.Lock()
	previous := l.imported
	l.imported = ""
	l.mutex.Unlock()
	if previous != "" {
		l.registry.RemoveFamily(previous)
	}
}
