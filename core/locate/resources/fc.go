package resources

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

func findFontConfigBinary(conf schuko.Configuration) (string, error) {
	fcpath := core.StringSetting(conf, "fontconfig")
	if fcpath == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		return "", core.Error(core.EMISSING, "fontconfig not configured")
	}
	if !filepath.IsAbs(fcpath) {
		return "", core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
	}
	return fcpath, nil
}

// cacheFontConfigList runs fc-list once and stores its output in the user's
// config directory. Subsequent calls re-use the file, unless update is set.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, error) {
	appkey := core.StringSetting(conf, "app-key")
	uconfdir, err := os.UserConfigDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user config directory not set")
	}
	dir := filepath.Join(uconfdir, appkey)
	fcListFilename := filepath.Join(dir, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil && !update {
		return fcListFilename, nil
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(dir, 0755); err != nil {
		return "", core.WrapError(err, core.EINVALID,
			"user configuration path cannot be created: %s", dir)
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		defer fontlistFile.Close()
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
	}
	if err != nil {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
	}
	return fcListFilename, nil
}

// parseFontConfigList reads lines of fc-list output, which look like
//
//    /usr/share/fonts/truetype/dejavu/DejaVuSerif-Bold.ttf: DejaVu Serif:style=Bold
//
// Font collections are skipped; their number is returned as well.
func parseFontConfigList(r io.Reader) ([]font.Descriptor, int, error) {
	var descs []font.Descriptor
	scanner := bufio.NewScanner(r)
	ttc := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		fontname := strings.TrimSpace(fields[1])
		fontname = strings.TrimPrefix(fontname, ".")
		if i := strings.IndexByte(fontname, ','); i > 0 {
			fontname = fontname[:i] // first of localized names
		}
		fontvari := strings.ToLower(fields[2])
		if strings.HasSuffix(fontpath, ".ttc") {
			ttc++
			continue
		}
		desc := font.Descriptor{
			Family: fontname,
			Path:   fontpath,
		}
		switch {
		case strings.Contains(fontvari, "italic"):
			desc.Variants = []string{"italic"}
		case strings.Contains(fontvari, "regular"), strings.Contains(fontvari, "text"),
			strings.Contains(fontvari, "book"):
			desc.Variants = []string{"regular"}
		case strings.Contains(fontvari, "light"):
			desc.Variants = []string{"light"}
		case strings.Contains(fontvari, "bold"), strings.Contains(fontvari, "black"):
			desc.Variants = []string{"bold"}
		}
		descs = append(descs, desc)
	}
	return descs, ttc, scanner.Err()
}

// fontConfig holds the cached fontconfig font list.
type fontConfig struct {
	once  sync.Once
	err   error
	descs []font.Descriptor
}

var systemFontConfig = &fontConfig{}

func (fc *fontConfig) load(conf schuko.Configuration) error {
	fc.once.Do(func() {
		var fclist string
		if fclist, fc.err = cacheFontConfigList(conf, false); fc.err != nil {
			return
		}
		f, err := os.Open(fclist)
		if err != nil {
			fc.err = core.WrapError(err, core.EINVALID,
				"fontconfig font list cannot be opened: %s", fclist)
			return
		}
		defer f.Close()
		var ttc int
		fc.descs, ttc, err = parseFontConfigList(f)
		if err != nil {
			fc.err = core.WrapError(err, core.EINVALID,
				"encountered a problem during reading of fontconfig font list: %s", fclist)
			return
		}
		if ttc > 0 {
			tracer().Infof("skipping %d platform font collections", ttc)
		}
		tracer().Infof("loaded fontconfig list with %d fonts", len(fc.descs))
	})
	return fc.err
}

func (fc *fontConfig) find(conf schuko.Configuration, pattern string, style xfont.Style,
	weight xfont.Weight) (font.Descriptor, string) {
	//
	if err := fc.load(conf); err != nil {
		return font.Descriptor{}, ""
	}
	desc, variant, confidence := fontregistry.ClosestMatch(fc.descs, pattern, style, weight)
	tracer().Debugf("closest fontconfig match confidence for %s|%s = %d", desc.Family, variant, confidence)
	if confidence > fontregistry.LowConfidence {
		return desc, variant
	}
	return font.Descriptor{}, ""
}

// FindFontConfigFont searches for a locally installed font variant using the fontconfig
// system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured in the application configuration by
// setting the absolute path of the 'fc-list' binary.
//
// FindFontConfigFont will copy the output of fc-list to the user's config
// directory once. Subsequent calls will use the cached entries to search for
// a font, given a name pattern, a style and a weight.
//
// We call the binary instead of using the C library because of possible version
// issues. If fontconfig is not configured, FindFontConfigFont will silently return an
// empty font descriptor and an empty variant name.
func FindFontConfigFont(conf schuko.Configuration, pattern string, style xfont.Style, weight xfont.Weight) (
	desc font.Descriptor, variant string) {
	//
	return systemFontConfig.find(conf, pattern, style, weight)
}
