package loader

import (
	"context"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/locate/resources"
	"github.com/npillmayer/glyphscope/engine/fontcss"
)

// LoadGoogleFonts loads a Google Fonts stylesheet, given as URL or as HTML
// embed code. The first family of the stylesheet is selected, in its
// preferred weight and style, and the fonts for that variant are downloaded
// and registered.
func (l *Loader) LoadGoogleFonts(ctx context.Context, input string) (*Result, error) {
	cssURL, err := fontcss.StylesheetURL(input, "Google Fonts CSS")
	if err != nil {
		return nil, err
	}
	stylesheet, err := resources.Fetch(ctx, l.conf, cssURL)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "Failed to load Google Fonts CSS file")
	}
	infos, err := fontcss.ExtractFontInfo(string(stylesheet))
	if err != nil {
		return nil, err
	}
	first := infos[0]
	result := &Result{
		Source:    SourceGoogle,
		URL:       cssURL,
		Family:    first.Family,
		Weight:    fontcss.PreferredWeight(first.Weights),
		Style:     fontcss.PreferredStyle(first.Styles),
		FontInfos: infos,
	}
	result.Faces, err = l.LoadFaces(ctx, infos, cssURL, result.Family, result.Weight, result.Style)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded %d families from %s", len(infos), cssURL)
	return result, nil
}

// LoadTypekit loads an Adobe Typekit stylesheet, given as URL or as HTML
// embed code. The family is taken from the stylesheet (see
// fontcss.TypekitFamily) and selected with weight 400 and style normal.
func (l *Loader) LoadTypekit(ctx context.Context, input string) (*Result, error) {
	cssURL, err := fontcss.StylesheetURL(input, "CSS")
	if err != nil {
		return nil, err
	}
	stylesheet, err := resources.Fetch(ctx, l.conf, cssURL)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "Failed to load CSS file")
	}
	family, err := fontcss.TypekitFamily(string(stylesheet))
	if err != nil {
		return nil, err
	}
	result := &Result{
		Source: SourceTypekit,
		URL:    cssURL,
		Family: family,
		Weight: "400",
		Style:  "normal",
	}
	if family == "" {
		tracer().Infof("no font family found in %s", cssURL)
		return result, nil
	}
	if infos, err := fontcss.ExtractFontInfo(string(stylesheet)); err == nil {
		result.FontInfos = infos
		if result.Faces, err = l.LoadFaces(ctx, infos, cssURL, family, result.Weight, result.Style); err != nil {
			return nil, err
		}
	}
	return result, nil
}
