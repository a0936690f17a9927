package probe

import (
	"fmt"
	"strings"
)

// FallbackFamily is the generic family every probe compares against.
const FallbackFamily = "serif"

// Dimensions is the box of a measured text, in pixels.
type Dimensions struct {
	Width  float64
	Height float64
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%.0f×%.0f", d.Width, d.Height)
}

// TextMeasurer measures the box of a text rendered with a font stack.
// Families of the stack are tried in order for each character, as a browser
// does for a CSS font-family list.
type TextMeasurer interface {
	Measure(text string, stack []string) (Dimensions, error)
}

// Stack creates a font stack from family names, dropping empty ones.
func Stack(families ...string) []string {
	stack := make([]string, 0, len(families))
	for _, f := range families {
		if f = strings.TrimSpace(f); f != "" {
			stack = append(stack, f)
		}
	}
	return stack
}

// Supported is the decision rule of the probe: the target box must differ
// from the fallback box in width or height, and must not be empty.
func Supported(target, fallback Dimensions) bool {
	differs := target.Width != fallback.Width || target.Height != fallback.Height
	return differs && target.Width > 0 && target.Height > 0
}

// Probe reports whether family supplies a glyph for char, compared to
// FallbackFamily. Measurement errors count as "not supported".
func Probe(m TextMeasurer, family string, char string) bool {
	return ProbeWith(m, family, FallbackFamily, char)
}

// ProbeWith is like Probe, but compares against a given fallback family.
func ProbeWith(m TextMeasurer, family, fallback string, char string) bool {
	if m == nil || family == "" || char == "" {
		return false
	}
	target, err := m.Measure(char, Stack(family, fallback))
	if err != nil {
		tracer().Debugf("probe: cannot measure %q with %s: %v", char, family, err)
		return false
	}
	base, err := m.Measure(char, Stack(fallback))
	if err != nil {
		tracer().Debugf("probe: cannot measure %q with fallback %s: %v", char, fallback, err)
		return false
	}
	return Supported(target, base)
}
