package probe

import (
	"math"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	xfont "golang.org/x/image/font"
)

// FaceMeasurer is a TextMeasurer working on the fonts of a registry.
//
// Width is the sum of the advances of the characters, each taken from the
// first font of the stack having a glyph for it. If no font has one, the
// advance of the last font's .notdef glyph is used. Height is the largest
// ascent+descent of the fonts contributing to the text. Dimensions are
// rounded to whole pixels.
type FaceMeasurer struct {
	registry *fontregistry.Registry
	size     float32
	style    xfont.Style
	weight   xfont.Weight
}

var _ TextMeasurer = (*FaceMeasurer)(nil)

// NewFaceMeasurer creates a measurer for fonts of registry at a pixel size.
// Sizes <= 0 default to 32.
func NewFaceMeasurer(registry *fontregistry.Registry, size float32) *FaceMeasurer {
	if size <= 0 {
		size = 32
	}
	return &FaceMeasurer{
		registry: registry,
		size:     size,
		style:    xfont.StyleNormal,
		weight:   xfont.WeightNormal,
	}
}

// WithVariant returns a copy of fm which selects fonts of a given style
// and weight.
func (fm *FaceMeasurer) WithVariant(style xfont.Style, weight xfont.Weight) *FaceMeasurer {
	m := *fm
	m.style, m.weight = style, weight
	return &m
}

// Size is the pixel size the measurer uses.
func (fm *FaceMeasurer) Size() float32 {
	return fm.size
}

// Measure measures text with a font stack. Families unknown to the registry
// are skipped; if no family of stack is known, an error with code EMISSING
// is returned.
func (fm *FaceMeasurer) Measure(text string, stack []string) (Dimensions, error) {
	cases := fm.typeCases(stack)
	if len(cases) == 0 {
		return Dimensions{}, core.Error(core.EMISSING, "none of the fonts %v is loaded", stack)
	}
	used := make([]bool, len(cases))
	width := 0.0
	for _, r := range text {
		found := false
		for i, tc := range cases {
			if adv, ok := tc.GlyphAdvance(r); ok {
				width += adv
				used[i], found = true, true
				break
			}
		}
		if !found {
			last := len(cases) - 1
			width += cases[last].NotdefAdvance()
			used[last] = true
		}
	}
	height := 0.0
	for i, tc := range cases {
		if used[i] {
			height = math.Max(height, tc.Height())
		}
	}
	return Dimensions{Width: math.Round(width), Height: math.Round(height)}, nil
}

func (fm *FaceMeasurer) typeCases(stack []string) []*font.TypeCase {
	cases := make([]*font.TypeCase, 0, len(stack))
	for _, family := range stack {
		tc, err := fm.registry.LookupTypeCase(family, fm.style, fm.weight, fm.size)
		if err != nil {
			tracer().Debugf("measurer skips family %s: %v", family, err)
			continue
		}
		cases = append(cases, tc)
	}
	return cases
}
