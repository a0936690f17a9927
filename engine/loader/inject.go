package loader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/engine/fontcss"
)

// InjectCSS registers the fonts of all @font-face rules of a stylesheet.
// Font sources may be URLs (http, https, file, data) or local paths,
// relative paths being resolved against base, or locally installed fonts.
// The first family of the stylesheet is selected.
func (l *Loader) InjectCSS(ctx context.Context, stylesheet string, base string) (*Result, error) {
	infos, err := fontcss.ExtractFontInfo(stylesheet)
	if err != nil {
		return nil, err
	}
	first := infos[0]
	result := &Result{
		Source:    SourceCSS,
		Family:    first.Family,
		Weight:    fontcss.PreferredWeight(first.Weights),
		Style:     fontcss.PreferredStyle(first.Styles),
		FontInfos: infos,
	}
	var lastErr error
	for _, fi := range infos {
		for _, face := range fi.Faces {
			f, err := l.fetchFace(ctx, face, base)
			if err != nil {
				tracer().Errorf("cannot load face of %s: %v", face.Family, err)
				lastErr = err
				continue
			}
			for _, w := range fontcss.ExpandWeights(face.Weight) {
				l.register(face.Family, w, face.Style, f)
			}
			result.Faces++
		}
	}
	if result.Faces == 0 && lastErr != nil {
		return nil, lastErr
	}
	return result, nil
}

// InjectCSSFile reads a stylesheet from disk and injects it. Relative font
// paths are resolved against the directory of the stylesheet.
func (l *Loader) InjectCSSFile(ctx context.Context, path string) (*Result, error) {
	stylesheet, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read stylesheet %s", path)
	}
	return l.InjectCSS(ctx, string(stylesheet), filepath.Dir(path))
}
