package loader

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/glyphscope/core/font/fonttest"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
)

const googleCSS = `
@font-face {
  font-family: 'Test Mono';
  font-style: normal;
  font-weight: 400;
  src: url(/fonts/testmono.ttf) format('truetype');
}
@font-face {
  font-family: 'Test Mono';
  font-style: italic;
  font-weight: 700;
  src: url(/fonts/missing.ttf) format('truetype');
}
@font-face {
  font-family: 'Test Sans';
  font-style: normal;
  font-weight: 300 500;
  src: url(%s/fonts/testsans.woff2) format('woff2'), url(%s/fonts/testsans.ttf) format('truetype');
}
`

const typekitCSS = `
@font-face {
  font-family: "test-kit";
  src: url("/fonts/testmono.woff2") format("woff2"), url("/fonts/testmono.woff") format("woff");
  font-weight: 400;
  font-style: normal;
}
.tk-test-kit { font-family: "test-kit", sans-serif; }
`

func fontServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/css", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, googleCSS, srv.URL, srv.URL)
	})
	mux.HandleFunc("/typekit.css", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, typekitCSS)
	})
	mux.HandleFunc("/empty.css", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "body { margin: 0; }")
	})
	mux.HandleFunc("/fonts/testmono.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fonttest.Mono())
	})
	mux.HandleFunc("/fonts/testsans.ttf", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fonttest.Regular())
	})
	mux.HandleFunc("/fonts/testmono.woff", func(w http.ResponseWriter, r *http.Request) {
		w.Write(fonttest.MustWOFF(fonttest.Mono()))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testLoader(t *testing.T) (*Loader, schuko.Configuration) {
	conf := testconfig.Conf{
		"app-key":   "glyphscope-test",
		"cache-dir": t.TempDir(),
	}
	return New(conf, fontregistry.NewRegistry()), conf
}

func TestLoadGoogleFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.loader")
	defer teardown()
	//
	srv := fontServer(t)
	l, _ := testLoader(t)
	snippet := `<link href="` + srv.URL + `/css" rel="stylesheet">`
	result, err := l.LoadGoogleFonts(context.Background(), snippet)
	require.NoError(t, err)
	assert.Equal(t, SourceGoogle, result.Source)
	assert.Equal(t, srv.URL+"/css", result.URL)
	assert.Equal(t, "Test Mono", result.Family)
	assert.Equal(t, "400", result.Weight)
	assert.Equal(t, "normal", result.Style)
	assert.Equal(t, 1, result.Faces)
	require.Len(t, result.FontInfos, 2)
	assert.Equal(t, []string{"300", "400", "500"}, result.FontInfos[1].Weights)
	tc, err := l.Registry().LookupTypeCase("Test Mono", xfont.StyleNormal, xfont.WeightNormal, 32)
	require.NoError(t, err)
	assert.Equal(t, "Go Mono", tc.ScalableFontParent().Fontname)
	//
	// selecting another family loads its faces, skipping the WOFF2 source
	n, err := l.LoadFaces(context.Background(), result.FontInfos, result.URL, "Test Sans", "500", "normal")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, l.Registry().HasFamily("Test Sans"))
	//
	_, err = l.LoadFaces(context.Background(), result.FontInfos, result.URL, "Test Mono", "700", "italic")
	assert.Equal(t, core.ECONNECTION, core.Code(err))
}

func TestLoadGoogleFontsErrors(t *testing.T) {
	srv := fontServer(t)
	l, _ := testLoader(t)
	_, err := l.LoadGoogleFonts(context.Background(), "  ")
	assert.Equal(t, "Please enter a Google Fonts CSS URL", core.UserMessage(err))
	_, err = l.LoadGoogleFonts(context.Background(), srv.URL+"/nothing-here.css")
	assert.Equal(t, core.ECONNECTION, core.Code(err))
	assert.Equal(t, "Failed to load Google Fonts CSS file", core.UserMessage(err))
	_, err = l.LoadGoogleFonts(context.Background(), srv.URL+"/empty.css")
	assert.Equal(t, core.EMISSING, core.Code(err))
	assert.Equal(t, "No fonts found in the CSS file", core.UserMessage(err))
}

func TestLoadTypekit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.loader")
	defer teardown()
	//
	srv := fontServer(t)
	l, _ := testLoader(t)
	result, err := l.LoadTypekit(context.Background(), srv.URL+"/typekit.css")
	require.NoError(t, err)
	assert.Equal(t, SourceTypekit, result.Source)
	assert.Equal(t, "test-kit", result.Family)
	assert.Equal(t, "400", result.Weight)
	assert.Equal(t, 1, result.Faces)
	tc, err := l.Registry().LookupTypeCase("test-kit", xfont.StyleNormal, xfont.WeightNormal, 32)
	require.NoError(t, err)
	assert.True(t, tc.ScalableFontParent().HasGlyph('x'))
	//
	_, err = l.LoadTypekit(context.Background(), "")
	assert.Equal(t, "Please enter a CSS URL", core.UserMessage(err))
}

func TestImportFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.loader")
	defer teardown()
	//
	l, _ := testLoader(t)
	l.now = func() time.Time { return time.UnixMilli(1700000000123) }
	dir := t.TempDir()
	path := filepath.Join(dir, "my_cool-font.ttf")
	require.NoError(t, os.WriteFile(path, fonttest.Mono(), 0644))
	result, err := l.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, SourceImport, result.Source)
	assert.Equal(t, "imported-1700000000123-My-Cool-Font", result.Family)
	assert.True(t, l.Registry().HasFamily(result.Family))
	//
	l.now = func() time.Time { return time.UnixMilli(1700000000999) }
	second, err := l.ImportFont("Other.woff", fonttest.MustWOFF(fonttest.Regular()), "font/woff")
	require.NoError(t, err)
	assert.Equal(t, "imported-1700000000999-Other", second.Family)
	assert.False(t, l.Registry().HasFamily(result.Family), "previous import is removed")
	assert.True(t, l.Registry().HasFamily(second.Family))
	l.ForgetImport()
	assert.False(t, l.Registry().HasFamily(second.Family))
}

func TestImportRejects(t *testing.T) {
	l, _ := testLoader(t)
	_, err := l.ImportFont("notes.txt", []byte("hello"), "text/plain")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.Equal(t, "Please select a valid font file (.woff2, .woff, .ttf, .otf)", core.UserMessage(err))
	_, err = l.ImportFont("font.woff2", []byte("wOF2 compressed"), "")
	assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
	_, err = l.ImportFont("broken.ttf", []byte("garbage"), "")
	assert.Equal(t, core.EINVALID, core.Code(err))
	assert.NoError(t, ValidFontFile("blob", "font/ttf"))
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "Open Sans Bold", FamilyNameFromFile("/tmp/open_sans-bold.TTF"))
	assert.Equal(t, "Roboto Mono", FamilyNameFromFile("roboto-Mono.woff2"))
	assert.Equal(t, "woff2", FormatFromFileName("x.woff2"))
	assert.Equal(t, "woff", FormatFromFileName("x.WOFF"))
	assert.Equal(t, "opentype", FormatFromFileName("x.otf"))
	assert.Equal(t, "truetype", FormatFromFileName("x.bin"))
}

func TestInjectCSS(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.loader")
	defer teardown()
	//
	l, _ := testLoader(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sans.ttf"), fonttest.Regular(), 0644))
	woff := base64.StdEncoding.EncodeToString(fonttest.MustWOFF(fonttest.Mono()))
	css := `
@font-face {
  font-family: "Inline Mono";
  src: url("data:font/woff;base64,` + woff + `") format("woff");
}
@font-face {
  font-family: "Relative Sans";
  font-weight: 700;
  src: url(sans.ttf);
}`
	cssPath := filepath.Join(dir, "fonts.css")
	require.NoError(t, os.WriteFile(cssPath, []byte(css), 0644))
	result, err := l.InjectCSSFile(context.Background(), cssPath)
	require.NoError(t, err)
	assert.Equal(t, SourceCSS, result.Source)
	assert.Equal(t, "Inline Mono", result.Family)
	assert.Equal(t, 2, result.Faces)
	_, err = l.Registry().LookupTypeCase("Inline Mono", xfont.StyleNormal, xfont.WeightNormal, 16)
	assert.NoError(t, err)
	_, err = l.Registry().LookupTypeCase("Relative Sans", xfont.StyleNormal, xfont.WeightBold, 16)
	assert.NoError(t, err)
	//
	_, err = l.InjectCSS(context.Background(), `@font-face { font-family: "X"; src: url(nowhere.ttf); }`, dir)
	assert.Error(t, err)
}

func TestDecodeDataURI(t *testing.T) {
	data, err := DecodeDataURI("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
	data, err = DecodeDataURI("data:application/octet-stream;base64,aGVs bG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	_, err = DecodeDataURI("data:nocomma")
	assert.Error(t, err)
}
