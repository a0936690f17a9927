package probe_test

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

func TestSupportedRule(t *testing.T) {
	assert.True(t, probe.Supported(probe.Dimensions{Width: 12, Height: 20}, probe.Dimensions{Width: 10, Height: 20}))
	assert.True(t, probe.Supported(probe.Dimensions{Width: 10, Height: 24}, probe.Dimensions{Width: 10, Height: 20}))
	assert.False(t, probe.Supported(probe.Dimensions{Width: 10, Height: 20}, probe.Dimensions{Width: 10, Height: 20}))
	assert.False(t, probe.Supported(probe.Dimensions{Width: 0, Height: 20}, probe.Dimensions{Width: 10, Height: 20}))
	assert.False(t, probe.Supported(probe.Dimensions{Width: 12, Height: 0}, probe.Dimensions{Width: 10, Height: 20}))
}

func TestProbeWithTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.glyphs")
	defer teardown()
	//
	m := probetest.Table{
		probetest.Key("A", "Test", "serif"): {Width: 12, Height: 20},
		probetest.Key("A", "serif"):         {Width: 10, Height: 20},
		probetest.Key("B", "Test", "serif"): {Width: 10, Height: 20},
		probetest.Key("B", "serif"):         {Width: 10, Height: 20},
		probetest.Key("C", "Test", "serif"): {Width: 12, Height: 20},
	}
	assert.True(t, probe.Probe(m, "Test", "A"))
	assert.False(t, probe.Probe(m, "Test", "B"), "identical boxes mean fallback")
	assert.False(t, probe.Probe(m, "Test", "C"), "measurement error means unsupported")
	assert.False(t, probe.Probe(m, "", "A"))
	assert.False(t, probe.Probe(nil, "Test", "A"))
}

func TestProbeWithFake(t *testing.T) {
	m := probetest.Covering("Test", 'a', 'b')
	assert.True(t, probe.Probe(m, "Test", "a"))
	assert.False(t, probe.Probe(m, "Test", "z"))
	assert.False(t, probe.Probe(m, "Other", "a"))
	assert.Equal(t, 6, m.Calls())
}

func fixtureRegistry(t *testing.T) *fontregistry.Registry {
	reg := fontregistry.NewRegistry()
	mono, err := font.ParseOpenTypeFont(fonttest.Mono())
	require.NoError(t, err)
	regular, err := font.ParseOpenTypeFont(fonttest.Regular())
	require.NoError(t, err)
	reg.Register("Go Mono", xfont.StyleNormal, xfont.WeightNormal, mono)
	reg.Register(probe.FallbackFamily, xfont.StyleNormal, xfont.WeightNormal, regular)
	return reg
}

func TestFaceMeasurer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.glyphs")
	defer teardown()
	//
	m := probe.NewFaceMeasurer(fixtureRegistry(t), 32)
	mono, err := m.Measure("iii", []string{"Go Mono"})
	require.NoError(t, err)
	prop, err := m.Measure("iii", []string{"serif"})
	require.NoError(t, err)
	t.Logf("'iii' mono = %v, proportional = %v", mono, prop)
	assert.Greater(t, mono.Width, prop.Width)
	assert.Equal(t, mono.Width, float64(int(mono.Width)), "dimensions are whole pixels")
	//
	_, err = m.Measure("x", []string{"Helvetica"})
	assert.Equal(t, core.EMISSING, core.Code(err))
	d, err := m.Measure("x", []string{"Helvetica", "serif"})
	require.NoError(t, err, "unknown families are skipped")
	assert.Equal(t, prop.Height, d.Height)
}

func TestProbeWithFaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.glyphs")
	defer teardown()
	//
	m := probe.NewFaceMeasurer(fixtureRegistry(t), 32)
	assert.True(t, probe.Probe(m, "Go Mono", "i"), "Go Mono has a wider 'i' than Go Regular")
	assert.False(t, probe.Probe(m, "Go Mono", "✁"), "neither font has dingbats")
	assert.False(t, probe.Probe(m, "Unknown Family", "i"))
}
