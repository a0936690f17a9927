package preview

import (
	"testing"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/glyphscope/core/font/fonttest"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/npillmayer/glyphscope/engine/probe/probetest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

func TestPreviewClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.glyphs")
	defer teardown()
	//
	m := probetest.Covering("Test", 'H', 'e', 'l', 'o')
	var sizes []float32
	p, err := Render("Test", "Hello w\u00f6rld", func(size float32) probe.TextMeasurer {
		sizes = append(sizes, size)
		return m
	})
	require.NoError(t, err)
	assert.Equal(t, Sizes, sizes)
	require.Len(t, p.Renderings, 3)
	assert.Equal(t, float32(16), p.Renderings[0].Size)
	require.Len(t, p.Clusters, 11)
	assert.True(t, p.Clusters[5].Blank)
	covered, total := p.Coverage()
	assert.Equal(t, 10, total)
	assert.Equal(t, 6, covered)
	assert.Equal(t, []string{"w", "\u00f6", "r", "d"}, p.Missing())
}

func TestPreviewGraphemes(t *testing.T) {
	m := probetest.Covering("Test", 'e')
	// e + combining acute is one cluster, led by a covered rune
	p, err := Render("Test", "e\u0301x", func(float32) probe.TextMeasurer { return m })
	require.NoError(t, err)
	require.Len(t, p.Clusters, 2)
	assert.Equal(t, "e\u0301", p.Clusters[0].Text)
	assert.True(t, p.Clusters[0].Covered)
	assert.False(t, p.Clusters[1].Covered)
}

func TestPreviewDefaults(t *testing.T) {
	m := probetest.Covering("Test")
	p, err := Render("Test", "   ", func(float32) probe.TextMeasurer { return m })
	require.NoError(t, err)
	assert.Equal(t, DefaultText, p.Text)
	_, err = Render("", "x", func(float32) probe.TextMeasurer { return m })
	assert.Equal(t, core.EMISSING, core.Code(err))
	m.Fails = func(rune) bool { return true }
	_, err = Render("Test", "x", func(float32) probe.TextMeasurer { return m })
	assert.ErrorIs(t, err, probetest.ErrMeasure)
}

func TestPreviewWithFaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.glyphs")
	defer teardown()
	//
	reg := fontregistry.NewRegistry()
	mono, err := font.ParseOpenTypeFont(fonttest.Mono())
	require.NoError(t, err)
	reg.Register("Go Mono", xfont.StyleNormal, xfont.WeightNormal, mono)
	reg.Register(probe.FallbackFamily, xfont.StyleNormal, xfont.WeightNormal, font.FallbackFont())
	p, err := Render("Go Mono", "Hilm", func(size float32) probe.TextMeasurer {
		return probe.NewFaceMeasurer(reg, size)
	})
	require.NoError(t, err)
	require.Len(t, p.Renderings, 3)
	assert.Less(t, p.Renderings[0].Box.Width, p.Renderings[2].Box.Width)
	covered, total := p.Coverage()
	assert.Equal(t, 4, total)
	assert.Equal(t, 4, covered)
}
