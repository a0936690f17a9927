package fontregistry

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// Registry is a type for holding information about loaded fonts.
// It is safe for concurrent use.
type Registry struct {
	sync.Mutex
	fonts     map[string]*font.ScalableFont
	typecases map[string]*font.TypeCase
	families  map[string][]variant // keyed by lowercase family name
	names     *treeset.Set         // family names as registered, sorted
}

// variant is a font of a family, stored under a normalized name.
type variant struct {
	key    string
	family string
	style  xfont.Style
	weight xfont.Weight
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// loaded fonts and typecases.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty font registry.
func NewRegistry() *Registry {
	fr := &Registry{
		fonts:     make(map[string]*font.ScalableFont),
		typecases: make(map[string]*font.TypeCase),
		families:  make(map[string][]variant),
		names:     treeset.NewWithStringComparator(),
	}
	return fr
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
// Fonts stored with StoreFont are not associated with a family; use
// Register for that.
func (fr *Registry) StoreFont(normalizedName string, f *font.ScalableFont) {
	if f == nil {
		tracer().Errorf("registry cannot store null font")
		return
	}
	fr.Lock()
	defer fr.Unlock()
	fr.storeFont(normalizedName, f)
}

func (fr *Registry) storeFont(normalizedName string, f *font.ScalableFont) bool {
	if _, ok := fr.fonts[normalizedName]; ok {
		return false
	}
	tracer().Debugf("registry stores font %s as %s", f.Fontname, normalizedName)
	fr.fonts[normalizedName] = f
	return true
}

// Register stores a font as a variant of a family, given by name, style and
// weight. Family names are matched case-insensitively. An existing variant
// of the family with the same style and weight will not be overridden.
// Register returns the normalized name the font is stored under.
func (fr *Registry) Register(family string, style xfont.Style, weight xfont.Weight,
	f *font.ScalableFont) string {
	//
	family = strings.TrimSpace(family)
	key := NormalizeFontname(family, style, weight)
	if f == nil || family == "" {
		tracer().Errorf("registry cannot register null font or empty family name")
		return key
	}
	fr.Lock()
	defer fr.Unlock()
	if !fr.storeFont(key, f) {
		return key
	}
	fkey := strings.ToLower(family)
	fr.families[fkey] = append(fr.families[fkey], variant{
		key:    key,
		family: family,
		style:  style,
		weight: weight,
	})
	fr.names.Add(family)
	return key
}

// RemoveFamily drops all variants of a family from the registry,
// together with their type cases.
func (fr *Registry) RemoveFamily(family string) {
	fr.Lock()
	defer fr.Unlock()
	fkey := strings.ToLower(strings.TrimSpace(family))
	variants, ok := fr.families[fkey]
	if !ok {
		return
	}
	for _, v := range variants {
		delete(fr.fonts, v.key)
		prefix := v.key + "@"
		for tname := range fr.typecases {
			if strings.HasPrefix(tname, prefix) {
				delete(fr.typecases, tname)
			}
		}
		fr.names.Remove(v.family)
	}
	delete(fr.families, fkey)
	tracer().Infof("registry dropped family %s", family)
}

// HasFamily is a predicate: does the registry contain a variant of family?
func (fr *Registry) HasFamily(family string) bool {
	fr.Lock()
	defer fr.Unlock()
	_, ok := fr.families[strings.ToLower(strings.TrimSpace(family))]
	return ok
}

// Families returns the names of all registered families, sorted.
func (fr *Registry) Families() []string {
	fr.Lock()
	defer fr.Unlock()
	return toStrings(fr.names.Values())
}

// Complete returns all registered family names starting with prefix,
// ignoring case, sorted.
func (fr *Registry) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	fr.Lock()
	defer fr.Unlock()
	var matches []string
	it := fr.names.Iterator()
	for it.Next() {
		name := it.Value().(string)
		if strings.HasPrefix(strings.ToLower(name), prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

func toStrings(values []interface{}) []string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = v.(string)
	}
	return s
}

// TypeCase returns a concrete typecase with a given font, style, weight and size.
// If a suitable typecase has already been cached, TypeCase will return the cached
// typecase. If a suitable font has previously been stored under key
// `normalizedName`, a typecase will be derived from this font.
//
// If no typecase can be produced, TypeCase will derive one from a system-wide
// fallback font and return it, together with an error message.
func (fr *Registry) TypeCase(normalizedName string, size float32) (*font.TypeCase, error) {
	tracer().Debugf("registry searches for font %s at %.2f", normalizedName, size)
	fr.Lock()
	defer fr.Unlock()
	if t, err := fr.typeCase(normalizedName, size); err == nil {
		return t, nil
	}
	tracer().Infof("registry does not contain font %s", normalizedName)
	err := core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	//
	// store typecase from fallback font, if not present yet, and return it
	fname := "fallback"
	if _, ok := fr.fonts[fname]; !ok {
		fr.fonts[fname] = font.FallbackFont()
	}
	t, e := fr.typeCase(fname, size)
	if e != nil {
		return nil, e
	}
	return t, err
}

func (fr *Registry) typeCase(normalizedName string, size float32) (*font.TypeCase, error) {
	tname := appendSize(normalizedName, size)
	if t, ok := fr.typecases[tname]; ok {
		return t, nil
	}
	f, ok := fr.fonts[normalizedName]
	if !ok {
		return nil, core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
	}
	t, err := f.PrepareCase(float64(size))
	if err != nil {
		return nil, err
	}
	tracer().Infof("font registry has font %s, caches at %.2f", normalizedName, size)
	fr.typecases[tname] = t
	return t, nil
}

// LookupTypeCase returns a type case for the closest variant of family,
// given style and weight. Matching the style takes priority over matching
// the weight. If the registry does not contain any variant of family,
// LookupTypeCase returns an error with code EMISSING; it never substitutes
// a fallback font.
func (fr *Registry) LookupTypeCase(family string, style xfont.Style, weight xfont.Weight,
	size float32) (*font.TypeCase, error) {
	//
	fr.Lock()
	defer fr.Unlock()
	variants, ok := fr.families[strings.ToLower(strings.TrimSpace(family))]
	if !ok || len(variants) == 0 {
		return nil, core.Error(core.EMISSING, "font family %q not loaded", family)
	}
	best, bestScore := variants[0], -1<<30
	for _, v := range variants {
		score := 0
		if v.style == style {
			score += 100
		}
		score -= absInt(int(v.weight) - int(weight))
		if score > bestScore {
			best, bestScore = v, score
		}
	}
	return fr.typeCase(best.key, size)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// LogFontList is a helper function to dump the list of known fonts and typecases
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, v := range fr.fonts {
		tracer().Infof("font [%s] = %v", k, v.Fontname)
	}
	for k, v := range fr.typecases {
		tracer().Infof("typecase [%s] = %v", k, v.ScalableFontParent().Fontname)
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname creates a registry key from a font name, style and weight.
// Weights are kept with CSS granularity, e.g., "go_mono-italic-700".
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if ext := path.Ext(fname); isFontFileExt(ext) {
		fname = fname[:len(fname)-len(ext)]
	}
	fname = strings.ToLower(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	if weight != xfont.WeightNormal {
		fname += "-" + font.CSSWeight(weight)
	}
	return fname
}

func isFontFileExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".ttf", ".otf", ".ttc", ".woff", ".woff2":
		return true
	}
	return false
}

func appendSize(fname string, size float32) string {
	return fmt.Sprintf("%s@%.2f", fname, size)
}

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	tracer().Debugf("basename of font = %s", basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && w == weight
}

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

// Levels of confidence.
const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// ClosestMatch scans a list of font desriptors and returns the closest match
// for a given set of parameters.
// If no variant matches, returns `NoConfidence`.
func ClosestMatch(fdescs []font.Descriptor, pattern string, style xfont.Style,
	weight xfont.Weight) (match font.Descriptor, variant string, confidence MatchConfidence) {
	//
	r, err := regexp.Compile(strings.ToLower(pattern))
	if err != nil {
		tracer().Errorf("invalid font name pattern")
		return
	}
	for _, fdesc := range fdescs {
		if !r.MatchString(strings.ToLower(fdesc.Family)) {
			continue
		}
		for _, v := range fdesc.Variants {
			s := MatchStyle(v, style)
			w := MatchWeight(v, weight)
			if (s+w)/2 > confidence {
				confidence = (s + w) / 2
				variant = v
				match = fdesc
			}
		}
	}
	return
}

// ---------------------------------------------------------------------------

// MatchStyle trys to match a font-variant to a given style.
func MatchStyle(variantName string, style xfont.Style) MatchConfidence {
	variantName = strings.ToLower(variantName)
	switch style {
	case xfont.StyleNormal:
		switch variantName {
		case "regular", "400":
			return PerfectConfidence
		case "100", "200", "300", "500", "600", "700", "800", "900", "light", "bold":
			return HighConfidence
		}
		return NoConfidence
	case xfont.StyleItalic:
		if strings.Contains(variantName, "italic") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "obliq") {
			return HighConfidence
		}
		return NoConfidence
	case xfont.StyleOblique:
		if strings.Contains(variantName, "obliq") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "italic") {
			return HighConfidence
		}
		return NoConfidence
	}
	return NoConfidence
}

// MatchWeight trys to match a font-variant to a given weight.
// Variant names are either CSS weights, optionally followed by a style
// ("700italic"), or names like "regular" or "bold".
func MatchWeight(variantName string, weight xfont.Weight) MatchConfidence {
	variantName = strings.ToLower(variantName)
	numeric := strings.TrimRight(variantName, "abcdefghijklmnopqrstuvwxyz")
	if n, err := strconv.Atoi(numeric); err == nil {
		diff := absInt(n/100 - 4 - int(weight))
		switch diff {
		case 0:
			return PerfectConfidence
		case 1:
			return HighConfidence
		case 2:
			return LowConfidence
		}
		return NoConfidence
	}
	switch variantName {
	case "regular", "italic", "oblique", "normal", "text":
		switch weight {
		case xfont.WeightNormal, xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return LowConfidence
		}
		return NoConfidence
	case "light":
		switch weight {
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return PerfectConfidence
		case xfont.WeightNormal:
			return LowConfidence
		}
		return NoConfidence
	case "bold":
		switch weight {
		case xfont.WeightBold:
			return PerfectConfidence
		case xfont.WeightSemiBold, xfont.WeightExtraBold:
			return HighConfidence
		case xfont.WeightBlack:
			return LowConfidence
		}
		return NoConfidence
	}
	return NoConfidence
}
