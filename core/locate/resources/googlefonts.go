package resources

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// GoogleFontInfo describes a font family of the Google Fonts directory.
type GoogleFontInfo struct {
	Family   string            `json:"family"`
	Version  string            `json:"version"`
	Variants []string          `json:"variants"`
	Subsets  []string          `json:"subsets"`
	Files    map[string]string `json:"files"`
}

// GoogleFontsDirectory is the list of font families offered by the Google
// Fonts developer API.
type GoogleFontsDirectory struct {
	Items []GoogleFontInfo `json:"items"`
}

// LoadGoogleFontsDirectory downloads the directory of fonts from the Google
// Fonts developer API. An API key is required, either in configuration key
// `google-api-key` or as GOOGLE_API_KEY in the environment.
func LoadGoogleFontsDirectory(ctx context.Context, conf schuko.Configuration) (*GoogleFontsDirectory, error) {
	apikey := core.StringSetting(conf, "google-api-key")
	if apikey == "" {
		apikey = os.Getenv("GOOGLE_API_KEY")
	}
	if apikey == "" {
		tracer().Errorf("Google API key not set")
		return nil, core.Error(core.EMISSING,
			`Google Fonts API-key must be set in configuration or as GOOGLE_API_KEY in environment;
      please refer to https://developers.google.com/fonts/docs/developer_api`)
	}
	values := url.Values{
		"sort": []string{"alpha"},
		"key":  []string{apikey},
	}
	api := core.StringSetting(conf, "google-fonts-api") + "?" + values.Encode()
	data, err := Fetch(ctx, conf, api)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION,
			"could not get fonts-directory from Google font service")
	}
	dir := &GoogleFontsDirectory{}
	if err = json.Unmarshal(data, dir); err != nil {
		return nil, core.WrapError(err, core.EINVALID,
			"could not decode fonts-list from Google font service")
	}
	tracer().Infof("Google fonts directory lists %d families", len(dir.Items))
	return dir, nil
}

// List returns the entries with font-family names matching a given pattern
// (a regular expression, matched case-insensitively).
func (dir *GoogleFontsDirectory) List(pattern string) ([]GoogleFontInfo, error) {
	r, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid pattern: %s", pattern)
	}
	var list []GoogleFontInfo
	for _, finfo := range dir.Items {
		if r.MatchString(finfo.Family) {
			list = append(list, finfo)
		}
	}
	return list, nil
}

// Find returns the entries matching pattern which offer a variant for the
// given style and weight.
func (dir *GoogleFontsDirectory) Find(pattern string, style xfont.Style, weight xfont.Weight) (
	[]GoogleFontInfo, error) {
	//
	candidates, err := dir.List(pattern)
	if err != nil {
		return nil, err
	}
	var fonts []GoogleFontInfo
	for _, fi := range candidates {
		if _, confidence := fi.Variant(style, weight); confidence > fontregistry.LowConfidence {
			fonts = append(fonts, fi)
		}
	}
	if len(fonts) == 0 {
		return nil, core.Error(core.EMISSING, "no Google font found for %s", pattern)
	}
	return fonts, nil
}

// Variant selects the variant of a font family closest to style and weight.
func (fi GoogleFontInfo) Variant(style xfont.Style, weight xfont.Weight) (string, fontregistry.MatchConfidence) {
	var variant string
	var confidence fontregistry.MatchConfidence
	for _, v := range fi.Variants {
		s := fontregistry.MatchStyle(v, style)
		w := fontregistry.MatchWeight(v, weight)
		if (s+w)/2 > confidence {
			variant, confidence = v, (s+w)/2
		}
	}
	return variant, confidence
}

// SortedFiles returns the variant names of a family which have a file
// associated, sorted.
func (fi GoogleFontInfo) SortedFiles() []string {
	names := make([]string, 0, len(fi.Files))
	for k := range fi.Files {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// CacheGoogleFont downloads a font variant into the cache directory and
// returns the file path.
func CacheGoogleFont(ctx context.Context, conf schuko.Configuration, fi GoogleFontInfo, variant string) (
	string, error) {
	//
	fileurl, ok := fi.Files[variant]
	if !ok {
		return "", core.Error(core.EMISSING, "no variant %s for font %s", variant, fi.Family)
	}
	folder := strings.ToLower(strings.ReplaceAll(fi.Family, " ", "_"))
	return CachedDownload(ctx, conf, fileurl, "fonts", "google", folder)
}
