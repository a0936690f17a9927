package loader

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/glyphscope/engine/fontcss"
	"github.com/npillmayer/schuko"
)

// Source tells where a font has been loaded from.
type Source string

// Font sources.
const (
	SourceTypekit Source = "typekit"
	SourceGoogle  Source = "google"
	SourceImport  Source = "import"
	SourceCSS     Source = "css"
)

// Result is what a loader reports after a successful load: the font
// selection to use and, for stylesheets, the families found.
type Result struct {
	Source    Source
	URL       string // stylesheet URL, if any
	Family    string
	Weight    string
	Style     string
	FontInfos []fontcss.FontInfo
	Faces     int // number of font faces registered
}

// Loader loads fonts into a registry.
type Loader struct {
	conf     schuko.Configuration
	registry *fontregistry.Registry
	now      func() time.Time
	mutex    sync.Mutex
	imported string // family of the most recent file import
}

// New creates a loader for a font registry.
func New(conf schuko.Configuration, registry *fontregistry.Registry) *Loader {
	return &Loader{
		conf:     conf,
		registry: registry,
		now:      time.Now,
	}
}

// Registry returns the font registry of the loader.
func (l *Loader) Registry() *fontregistry.Registry {
	return l.registry
}

// register stores a font for a family variant given as CSS values.
func (l *Loader) register(family, weight, style string, f *font.ScalableFont) string {
	key := l.registry.Register(family, font.ParseCSSStyle(style), font.ParseCSSWeight(weight), f)
	tracer().Infof("registered %s (%s) as %s", family, f.Fontname, key)
	return key
}

// LoadFaces downloads and registers the fonts of a family variant, using the
// @font-face rules of a stylesheet located at base. It returns the number of
// faces registered. Faces without a usable source are skipped.
func (l *Loader) LoadFaces(ctx context.Context, infos []fontcss.FontInfo, base string,
	family, weight, style string) (int, error) {
	//
	fi, ok := fontcss.Find(infos, family)
	if !ok {
		return 0, core.Error(core.EMISSING, "font family %s not found in stylesheet", family)
	}
	faces := fi.FacesFor(weight, style)
	sortByCoverage(faces)
	var lastErr error
	for _, face := range faces {
		f, err := l.fetchFace(ctx, face, base)
		if err != nil {
			tracer().Errorf("cannot load face of %s: %v", family, err)
			lastErr = err
			continue
		}
		// a registry holds one font per variant: the face covering Basic Latin wins
		l.register(family, weight, style, f)
		return 1, nil
	}
	if lastErr != nil {
		return 0, lastErr
	}
	return 0, nil
}

// sortByCoverage moves faces covering Basic Latin (or without any unicode
// range restriction) to the front.
func sortByCoverage(faces []fontcss.Face) {
	latin := func(f fontcss.Face) bool {
		return f.UnicodeRange == "" || strings.Contains(strings.ToUpper(f.UnicodeRange), "U+0000")
	}
	sort.SliceStable(faces, func(i, j int) bool {
		return latin(faces[i]) && !latin(faces[j])
	})
}

// fetchFace loads the font of the first source of a face we are able to use.
func (l *Loader) fetchFace(ctx context.Context, face fontcss.Face, baseDir string) (*font.ScalableFont, error) {
	var lastErr error
	for _, src := range face.Sources {
		var f *font.ScalableFont
		var err error
		switch {
		case src.Local != "":
			f, err = loadLocal(src.Local)
		case src.Usable():
			f, err = l.fetchURL(ctx, src.URL, baseDir)
		default:
			tracer().Debugf("skipping source %s (%s)", src.URL, src.FontFormat())
			continue
		}
		if err == nil {
			return f, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = core.Error(core.EUNSUPPORTED, "no usable font source for %s", face.Family)
	}
	return nil, lastErr
}
