package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font/fonttest"
	"github.com/npillmayer/glyphscope/core/glyphs"
	"github.com/npillmayer/glyphscope/engine/loader"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/npillmayer/glyphscope/engine/probe/probetest"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	xfont "golang.org/x/image/font"
)

var candidates = []rune{'1', 'a', 'b', 'e', 'x', 0x2192}

type SessionSuite struct {
	suite.Suite
	teardown func()
	session  *Session
	styles   []xfont.Style
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "glyphscope.session")
	conf := testconfig.Conf{
		"app-key":        "glyphscope-test",
		"cache-dir":      s.T().TempDir(),
		"scan-batch":     "2",
		"scan-delay-ms":  "0",
		"google-api-key": "",
	}
	s.T().Setenv("GOOGLE_API_KEY", "")
	s.session = New(conf)
	s.session.UseCandidates(candidates)
	s.styles = nil
	s.session.UseMeasurer(func(style xfont.Style, weight xfont.Weight, size float32) probe.TextMeasurer {
		s.styles = append(s.styles, style)
		return probetest.Covering("Test", '1', 'a', 'e', 0x2192)
	})
}

func (s *SessionSuite) TearDownTest() {
	s.session.Close()
	s.teardown()
}

func (s *SessionSuite) TestFallbackRegistered() {
	s.True(s.session.Registry().HasFamily(probe.FallbackFamily))
}

func (s *SessionSuite) TestLoadFontScans() {
	st := s.session.State()
	s.False(st.Loaded)
	s.Equal(loader.SourceTypekit, st.Source)
	//
	s.session.SetError("something went wrong")
	gen := s.session.LoadFont("Test", "", "italic")
	s.session.Scanner().Wait()
	st = s.session.State()
	s.True(st.Loaded)
	s.Equal("", st.Error)
	s.Equal("400", st.Weight)
	s.Equal("italic", st.Style)
	s.Equal(gen, st.Generation)
	s.Equal([]xfont.Style{xfont.StyleItalic}, s.styles)
	s.False(s.session.Scanning())
	s.Len(s.session.Records(), 4)
	//
	next := s.session.LoadFont("Test", "700", "normal")
	s.Greater(next, gen)
	s.session.Scanner().Wait()
	s.Len(s.session.Records(), 4)
}

// slowMeasurer delays every measurement.
type slowMeasurer struct {
	*probetest.Measurer
	delay time.Duration
}

func (m slowMeasurer) Measure(text string, stack []string) (probe.Dimensions, error) {
	time.Sleep(m.delay)
	return m.Measurer.Measure(text, stack)
}

func (s *SessionSuite) TestCloseStopsScan() {
	var letters []rune
	for r := 'a'; r <= 'z'; r++ {
		letters = append(letters, r)
	}
	s.session.UseCandidates(letters)
	m := probetest.Covering("Test", 'a', 'e')
	s.session.UseMeasurer(func(style xfont.Style, weight xfont.Weight, size float32) probe.TextMeasurer {
		return slowMeasurer{Measurer: m, delay: 5 * time.Millisecond}
	})
	s.session.LoadFont("Test", "400", "normal")
	s.session.LoadFont("Test", "700", "normal")
	time.Sleep(15 * time.Millisecond)
	s.session.Close()
	calls := m.Calls()
	time.Sleep(50 * time.Millisecond)
	s.Equal(calls, m.Calls(), "scan goroutines must not measure after Close")
	s.Less(calls, 4*len(letters))
}

func (s *SessionSuite) TestGlyphView() {
	s.session.LoadFont("Test", "400", "normal")
	s.session.Scanner().Wait()
	s.Len(s.session.Visible(), 4)
	cats := s.session.Categories()
	s.Equal([]glyphs.CategoryOption{
		{Value: glyphs.CategoryAll, Label: "All"},
		{Value: glyphs.CategoryLowercase, Label: "Lowercase"},
		{Value: glyphs.CategoryNumbers, Label: "Numbers"},
		{Value: glyphs.CategoryArrows, Label: "Arrows"},
	}, cats)
	s.session.SetCategory(glyphs.CategoryLowercase)
	s.Len(s.session.Visible(), 2)
	s.session.SetQuery("u+0065")
	visible := s.session.Visible()
	s.Require().Len(visible, 1)
	s.Equal("e", visible[0].Character)
	s.session.SetCategory("")
	s.session.SetQuery("")
	s.Len(s.session.Visible(), 4)
}

func (s *SessionSuite) TestCategoryResetsWhenUnavailable() {
	s.session.SetCategory(glyphs.CategoryDingbats)
	s.session.LoadFont("Test", "400", "normal")
	s.session.Scanner().Wait()
	s.Equal(glyphs.CategoryAll, s.session.Category())
	s.session.SetCategory(glyphs.CategoryArrows)
	s.session.LoadFont("Test", "700", "normal")
	s.session.Scanner().Wait()
	s.Equal(glyphs.CategoryArrows, s.session.Category())
}

func (s *SessionSuite) TestEmptyFamilyHasNoGlyphs() {
	s.session.LoadFont("", "", "")
	s.session.Scanner().Wait()
	s.True(s.session.State().Loaded)
	s.Empty(s.session.Records())
	s.Empty(s.session.Categories())
}

func (s *SessionSuite) TestImportAndReset() {
	path := filepath.Join(s.T().TempDir(), "go_mono.ttf")
	s.Require().NoError(os.WriteFile(path, fonttest.Mono(), 0644))
	s.Require().NoError(s.session.ImportFile(path))
	s.session.Scanner().Wait()
	st := s.session.State()
	s.Equal(loader.SourceImport, st.Source)
	s.Regexp(`^imported-\d+-Go-Mono$`, st.Family)
	s.True(s.session.Registry().HasFamily(st.Family))
	//
	s.session.SetQuery("x")
	s.session.ResetAll()
	reset := s.session.State()
	s.False(reset.Loaded)
	s.Equal("", reset.Family)
	s.Equal("400", reset.Weight)
	s.Equal("normal", reset.Style)
	s.Equal(loader.SourceImport, reset.Source)
	s.Empty(s.session.Records())
	s.Equal("", s.session.Query())
	s.False(s.session.Registry().HasFamily(st.Family))
	s.True(s.session.Registry().HasFamily(probe.FallbackFamily))
}

func (s *SessionSuite) TestImportFailureSetsError() {
	err := s.session.ImportFont("notes.txt", []byte("hello"), "text/plain")
	s.Equal(core.EINVALID, core.Code(err))
	st := s.session.State()
	s.Equal("Please select a valid font file (.woff2, .woff, .ttf, .otf)", st.Error)
	s.False(st.Loaded)
}

func (s *SessionSuite) TestSelectUnknownFont() {
	err := s.session.SelectFont(context.Background(), "No Such Family Anywhere")
	s.Error(err)
	s.Equal("Font No Such Family Anywhere not found", s.session.State().Error)
	err = s.session.SelectWeight(context.Background(), "700")
	s.Equal(core.EMISSING, core.Code(err))
}

func (s *SessionSuite) TestPreview() {
	_, err := s.session.Preview("")
	s.Equal(core.EMISSING, core.Code(err))
	s.session.LoadFont("Test", "400", "normal")
	p, err := s.session.Preview("a b")
	s.Require().NoError(err)
	covered, total := p.Coverage()
	s.Equal(2, total)
	s.Equal(1, covered)
	s.Equal([]string{"b"}, p.Missing())
}

// --- Google Fonts ----------------------------------------------------------

const stylesheet = `
@font-face {
  font-family: 'Test Sans';
  font-style: normal;
  font-weight: 400;
  src: url(%[1]s/sans.ttf) format('truetype');
}
@font-face {
  font-family: 'Test Mono';
  font-style: normal;
  font-weight: 300 500;
  src: url(%[1]s/mono.ttf) format('truetype');
}
@font-face {
  font-family: 'Test Mono';
  font-style: italic;
  font-weight: 300;
  src: url(%[1]s/mono.ttf) format('truetype');
}
`

func TestGoogleFontsSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.session")
	defer teardown()
	//
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/css2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, stylesheet, srv.URL)
	})
	mux.HandleFunc("/sans.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fonttest.Regular())
	})
	mux.HandleFunc("/mono.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fonttest.Mono())
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()
	//
	conf := testconfig.Conf{
		"cache-dir":     t.TempDir(),
		"fallback-font": "no-such-font-installed",
		"scan-delay-ms": "0",
	}
	s := New(conf)
	defer s.Close()
	s.UseCandidates([]rune{'a', 'm', 0x2192})
	require.NoError(t, s.LoadGoogleFonts(context.Background(), srv.URL+"/css2"))
	st := s.State()
	assert.Equal(t, loader.SourceGoogle, st.Source)
	assert.Equal(t, srv.URL+"/css2", st.URL)
	assert.Equal(t, "Test Sans", st.Family)
	assert.Equal(t, Selection{Font: "Test Sans", Weight: "400", Style: "normal"}, st.Selected)
	require.Len(t, st.FontInfos, 2)
	//
	require.NoError(t, s.SelectFont(context.Background(), "test mono"))
	st = s.State()
	assert.Equal(t, "Test Mono", st.Family)
	assert.Equal(t, "400", st.Weight)
	assert.True(t, s.Registry().HasFamily("Test Mono"))
	s.Scanner().Wait()
	// Go Mono's 'm' is much narrower than the one of the fallback font
	var found []string
	for _, rec := range s.Records() {
		found = append(found, rec.Character)
	}
	assert.Contains(t, found, "m")
	//
	require.NoError(t, s.SelectStyle(context.Background(), "italic"))
	err := s.SelectWeight(context.Background(), "900")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, "italic", s.State().Style)
	assert.NotEmpty(t, s.State().Error)
	//
	s.ResetAll()
	assert.False(t, s.Registry().HasFamily("Test Mono"))
	assert.False(t, s.Registry().HasFamily("Test Sans"))
	assert.Empty(t, s.State().FontInfos)
}
