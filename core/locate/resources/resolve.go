package resources

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

// FindSystemFont searches the system's font directories for a font file
// matching name. name may be a file name with or without extension.
func FindSystemFont(name string) (string, error) {
	fpath, err := findfont.Find(name)
	if err != nil || fpath == "" {
		return "", NotFound(name)
	}
	tracer().Debugf("%s is a system font at %s", name, fpath)
	return fpath, nil
}

// LoadSystemFont locates and parses a system font by file name.
func LoadSystemFont(name string) (*font.ScalableFont, error) {
	fpath, err := FindSystemFont(name)
	if err != nil {
		return nil, err
	}
	return font.LoadOpenTypeFont(fpath)
}

// ResolveFallbackFont returns the font used as the generic fallback. It is
// looked up as a system font from configuration key `fallback-font`; if that
// fails, the packaged Go Regular font is used.
func ResolveFallbackFont(conf schuko.Configuration) *font.ScalableFont {
	name := core.StringSetting(conf, "fallback-font")
	if name != "" {
		if f, err := LoadSystemFont(name); err == nil {
			tracer().Infof("fallback font is %s", f.Fontname)
			return f
		}
		tracer().Infof("fallback font %s not found on system", name)
	}
	return font.FallbackFont()
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is the result of ResolveTypeCase. Calls to TypeCase or
// Await block until the type case has been loaded.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
	Await(ctx context.Context) (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.TypeCase, error) {
	return loader.await(ctx)
}

// ResolveTypeCase resolves a font type case with a given size.
//
// The font family is searched for
//
//   - in the registry,
//   - as a system font,
//   - through fontconfig (if configured),
//   - in the Google Fonts directory (if an API key is configured).
//
// A font found outside the registry is registered for family, style and weight.
func ResolveTypeCase(ctx context.Context, conf schuko.Configuration, registry *fontregistry.Registry,
	family string, style xfont.Style, weight xfont.Weight, size float32) TypeCasePromise {
	//
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		result := fontPlusErr{}
		if t, err := registry.LookupTypeCase(family, style, weight, size); err == nil {
			result.font = t
			ch <- result
			return
		}
		var f *font.ScalableFont
		fname := strings.ReplaceAll(family, " ", "")
		if fpath, err := FindSystemFont(fname); err == nil {
			f, result.err = font.LoadOpenTypeFont(fpath)
		}
		if f == nil {
			if desc, _ := FindFontConfigFont(conf, family, style, weight); desc.Path != "" {
				tracer().Debugf("%s found by fontconfig", family)
				f, result.err = font.LoadOpenTypeFont(desc.Path)
			}
		}
		if f == nil {
			f, result.err = resolveGoogleFont(ctx, conf, family, style, weight)
		}
		if f != nil {
			registry.Register(family, style, weight, f)
			result.font, result.err = registry.LookupTypeCase(family, style, weight, size)
		} else if result.err == nil {
			result.err = NotFound(family)
		}
		ch <- result
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func resolveGoogleFont(ctx context.Context, conf schuko.Configuration, family string,
	style xfont.Style, weight xfont.Weight) (*font.ScalableFont, error) {
	//
	dir, err := LoadGoogleFontsDirectory(ctx, conf)
	if err != nil {
		return nil, err
	}
	fonts, err := dir.Find("^"+regexp.QuoteMeta(family)+"$", style, weight)
	if err != nil {
		return nil, err
	}
	fi := fonts[0]
	variant, _ := fi.Variant(style, weight)
	fpath, err := CacheGoogleFont(ctx, conf, fi, variant)
	if err != nil {
		return nil, err
	}
	return font.LoadOpenTypeFont(fpath)
}
