package preview

import (
	"strings"
	"unicode"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/rivo/uniseg"
)

// DefaultText is the sample text used for empty input.
const DefaultText = "Hello"

// Sizes are the pixel sizes a preview is rendered at.
var Sizes = []float32{16, 24, 32}

// MeasurerAt returns a text measurer for a pixel size.
type MeasurerAt func(size float32) probe.TextMeasurer

// Rendering is the box of the sample text at one size.
type Rendering struct {
	Size float32
	Box  probe.Dimensions
}

// Cluster is a grapheme cluster of the sample text.
type Cluster struct {
	Text    string
	Covered bool // supplied by the selected family
	Blank   bool // white space, not probed
}

// Preview is the result of rendering a sample text.
type Preview struct {
	Family     string
	Text       string
	Renderings []Rendering
	Clusters   []Cluster
}

// Render renders text with family at every size of Sizes. Coverage of the
// clusters is decided at the largest size.
func Render(family, text string, at MeasurerAt) (*Preview, error) {
	if family == "" {
		return nil, core.Error(core.EMISSING, "Please load a font first")
	}
	if strings.TrimSpace(text) == "" {
		text = DefaultText
	}
	p := &Preview{Family: family, Text: text}
	stack := probe.Stack(family, probe.FallbackFamily)
	var largest probe.TextMeasurer
	var max float32
	for _, size := range Sizes {
		m := at(size)
		box, err := m.Measure(text, stack)
		if err != nil {
			return nil, err
		}
		p.Renderings = append(p.Renderings, Rendering{Size: size, Box: box})
		if size >= max {
			largest, max = m, size
		}
	}
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		c := Cluster{Text: gr.Str()}
		if strings.TrimFunc(c.Text, unicode.IsSpace) == "" {
			c.Blank = true
		} else {
			c.Covered = probe.Probe(largest, family, c.Text)
		}
		p.Clusters = append(p.Clusters, c)
	}
	tracer().Debugf("preview of %q with %s: %d clusters", text, family, len(p.Clusters))
	return p, nil
}

// Coverage counts the non-blank clusters of a preview and how many of them
// the selected family supplies.
func (p *Preview) Coverage() (covered, total int) {
	for _, c := range p.Clusters {
		if c.Blank {
			continue
		}
		total++
		if c.Covered {
			covered++
		}
	}
	return
}

// Missing returns the non-blank clusters the selected family does not supply.
func (p *Preview) Missing() []string {
	var missing []string
	for _, c := range p.Clusters {
		if !c.Blank && !c.Covered {
			missing = append(missing, c.Text)
		}
	}
	return missing
}
