package font

import (
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
)

// Descriptor describes a font family found in a font directory, e.g. the
// output of fontconfig or the Google Fonts listing.
type Descriptor struct {
	Family   string
	Path     string   // file path for local fonts, empty otherwise
	Variants []string // variant names like "regular", "700italic"
}

// ParseCSSStyle maps a CSS font-style value to a style.
// Unknown values map to StyleNormal.
func ParseCSSStyle(s string) xfont.Style {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "italic":
		return xfont.StyleItalic
	case "oblique":
		return xfont.StyleOblique
	}
	if strings.HasPrefix(strings.ToLower(s), "oblique ") {
		return xfont.StyleOblique
	}
	return xfont.StyleNormal
}

// CSSStyle maps a style to its CSS font-style value.
func CSSStyle(s xfont.Style) string {
	switch s {
	case xfont.StyleItalic:
		return "italic"
	case xfont.StyleOblique:
		return "oblique"
	}
	return "normal"
}

// ParseCSSWeight maps a CSS font-weight value ("400", "bold", …) to a weight.
// Numeric values are rounded to the nearest multiple of 100. Unknown values
// map to WeightNormal.
func ParseCSSWeight(w string) xfont.Weight {
	w = strings.ToLower(strings.TrimSpace(w))
	switch w {
	case "normal", "regular", "":
		return xfont.WeightNormal
	case "bold":
		return xfont.WeightBold
	case "lighter":
		return xfont.WeightLight
	case "bolder":
		return xfont.WeightExtraBold
	}
	n, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return xfont.WeightNormal
	}
	hundreds := int(n+50) / 100
	if hundreds < 1 {
		hundreds = 1
	} else if hundreds > 9 {
		hundreds = 9
	}
	return xfont.Weight(hundreds - 4)
}

// CSSWeight maps a weight to its numeric CSS font-weight value.
func CSSWeight(w xfont.Weight) string {
	return strconv.Itoa((int(w) + 4) * 100)
}
