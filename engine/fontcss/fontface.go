package fontcss

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/glyphscope/core"
)

// Source is an entry of the `src` descriptor of a @font-face rule: either a
// URL or the name of a locally installed font, plus an optional format hint.
type Source struct {
	URL    string
	Local  string
	Format string
}

// Face is a single @font-face rule.
type Face struct {
	Family       string
	Weight       string // as given, e.g. "400" or "100 900"
	Style        string
	UnicodeRange string
	Sources      []Source
}

// FontInfo collects the faces of a font family found in a stylesheet.
type FontInfo struct {
	Family        string
	Weights       []string // expanded, sorted numerically
	Styles        []string // in order of appearance
	UnicodeRanges []string
	Faces         []Face
}

// ParseFaces parses a stylesheet and returns its @font-face rules in order.
// Rules without a font-family descriptor are skipped.
func ParseFaces(stylesheet string) ([]Face, error) {
	sheet, err := parser.Parse(stylesheet)
	if err != nil {
		tracer().Errorf("cannot parse CSS: %v", err)
		return nil, core.WrapError(err, core.EINVALID, "Could not parse font families from CSS")
	}
	var faces []Face
	collectFaces(sheet.Rules, &faces)
	tracer().Debugf("stylesheet contains %d @font-face rules", len(faces))
	return faces, nil
}

func collectFaces(rules []*css.Rule, faces *[]Face) {
	for _, rule := range rules {
		if rule.Kind == css.AtRule && strings.EqualFold(rule.Name, "@font-face") {
			if face, ok := faceFromDeclarations(rule.Declarations); ok {
				*faces = append(*faces, face)
			}
			continue
		}
		collectFaces(rule.Rules, faces) // e.g., inside @media or @supports
	}
}

func faceFromDeclarations(decls []*css.Declaration) (Face, bool) {
	face := Face{Weight: "400", Style: "normal"}
	for _, decl := range decls {
		value := strings.TrimSpace(decl.Value)
		switch strings.ToLower(decl.Property) {
		case "font-family":
			face.Family = Unquote(value)
		case "font-weight":
			if value != "" {
				face.Weight = value
			}
		case "font-style":
			if value != "" {
				face.Style = value
			}
		case "unicode-range":
			face.UnicodeRange = value
		case "src":
			face.Sources = ParseSources(value)
		}
	}
	return face, face.Family != ""
}

// ExtractFontInfo collects the @font-face rules of a stylesheet by family,
// in order of first appearance of a family. If the stylesheet contains no
// usable rule, an error with code EMISSING is returned.
func ExtractFontInfo(stylesheet string) ([]FontInfo, error) {
	faces, err := ParseFaces(stylesheet)
	if err != nil {
		return nil, err
	}
	families := linkedhashmap.New()
	for _, face := range faces {
		var fi *FontInfo
		if v, found := families.Get(face.Family); found {
			fi = v.(*FontInfo)
		} else {
			fi = &FontInfo{Family: face.Family}
			families.Put(face.Family, fi)
		}
		for _, w := range ExpandWeights(face.Weight) {
			fi.Weights = appendUnique(fi.Weights, w)
		}
		fi.Styles = appendUnique(fi.Styles, face.Style)
		if face.UnicodeRange != "" {
			fi.UnicodeRanges = appendUnique(fi.UnicodeRanges, face.UnicodeRange)
		}
		fi.Faces = append(fi.Faces, face)
	}
	if families.Empty() {
		return nil, core.Error(core.EMISSING, "No fonts found in the CSS file")
	}
	infos := make([]FontInfo, 0, families.Size())
	for _, v := range families.Values() {
		fi := v.(*FontInfo)
		SortWeights(fi.Weights)
		infos = append(infos, *fi)
	}
	return infos, nil
}

func appendUnique(list []string, s string) []string {
	for _, x := range list {
		if x == s {
			return list
		}
	}
	return append(list, s)
}

// Find returns the FontInfo for family from a list, if present. Exact
// matches take precedence over matches ignoring case.
func Find(infos []FontInfo, family string) (FontInfo, bool) {
	for _, fi := range infos {
		if fi.Family == family {
			return fi, true
		}
	}
	for _, fi := range infos {
		if strings.EqualFold(fi.Family, family) {
			return fi, true
		}
	}
	return FontInfo{}, false
}

// FacesFor returns the faces of a family covering a weight and a style.
func (fi FontInfo) FacesFor(weight, style string) []Face {
	var faces []Face
	for _, face := range fi.Faces {
		if face.Style != style {
			continue
		}
		for _, w := range ExpandWeights(face.Weight) {
			if w == weight {
				faces = append(faces, face)
				break
			}
		}
	}
	return faces
}

var commonWeights = [...]int{100, 200, 300, 400, 500, 600, 700, 800, 900}

// ExpandWeights expands a font-weight range like "100 900" (as used for
// variable fonts) to the common weights within the range. Other values are
// returned as they are.
func ExpandWeights(weight string) []string {
	weight = strings.TrimSpace(weight)
	if fields := strings.Fields(weight); len(fields) == 2 {
		min, err1 := strconv.Atoi(fields[0])
		max, err2 := strconv.Atoi(fields[1])
		if err1 == nil && err2 == nil {
			weights := []string{}
			for _, w := range commonWeights {
				if w >= min && w <= max {
					weights = append(weights, strconv.Itoa(w))
				}
			}
			return weights
		}
	}
	return []string{weight}
}

// SortWeights sorts weights numerically. Non-numeric weights are placed
// after the numeric ones, keeping their order.
func SortWeights(weights []string) {
	sort.SliceStable(weights, func(i, j int) bool {
		a, erra := strconv.Atoi(weights[i])
		b, errb := strconv.Atoi(weights[j])
		switch {
		case erra != nil:
			return false
		case errb != nil:
			return true
		}
		return a < b
	})
}

// PreferredWeight is "400" if contained in weights, else the first weight,
// else "400".
func PreferredWeight(weights []string) string {
	for _, w := range weights {
		if w == "400" {
			return w
		}
	}
	if len(weights) > 0 {
		return weights[0]
	}
	return "400"
}

// PreferredStyle is "normal" if contained in styles, else the first style,
// else "normal".
func PreferredStyle(styles []string) string {
	for _, s := range styles {
		if s == "normal" {
			return s
		}
	}
	if len(styles) > 0 {
		return styles[0]
	}
	return "normal"
}

// TypekitFamily finds the font family of a Typekit stylesheet: the first
// double-quoted font-family value, else the class name of the first rule
// declaring a font-family. Returns "" if neither exists.
func TypekitFamily(stylesheet string) (string, error) {
	sheet, err := parser.Parse(stylesheet)
	if err != nil {
		return "", core.WrapError(err, core.EINVALID, "Could not parse font family from CSS")
	}
	if family := firstQuotedFamily(sheet.Rules); family != "" {
		return family, nil
	}
	return firstFamilyClass(sheet.Rules), nil
}

func firstQuotedFamily(rules []*css.Rule) string {
	for _, rule := range rules {
		for _, decl := range rule.Declarations {
			v := strings.TrimSpace(decl.Value)
			if strings.EqualFold(decl.Property, "font-family") && strings.HasPrefix(v, `"`) {
				if i := strings.IndexByte(v[1:], '"'); i > 0 {
					return v[1 : i+1]
				}
			}
		}
		if family := firstQuotedFamily(rule.Rules); family != "" {
			return family
		}
	}
	return ""
}

func firstFamilyClass(rules []*css.Rule) string {
	for _, rule := range rules {
		if rule.Kind != css.QualifiedRule {
			continue
		}
		for _, decl := range rule.Declarations {
			if !strings.EqualFold(decl.Property, "font-family") {
				continue
			}
			for _, sel := range rule.Selectors {
				if class := className(sel); class != "" {
					return class
				}
			}
		}
	}
	return ""
}

// className extracts the class name of a selector like ".tk-font".
func className(sel string) string {
	sel = strings.TrimSpace(sel)
	if !strings.HasPrefix(sel, ".") {
		return ""
	}
	end := strings.IndexFunc(sel[1:], func(r rune) bool {
		return !(r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if end < 0 {
		return sel[1:]
	}
	return sel[1 : end+1]
}

// Unquote removes a pair of enclosing single or double quotes.
func Unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
