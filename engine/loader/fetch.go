package loader

import (
	"context"
	"encoding/base64"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/locate/resources"
)

// fetchURL loads a font from a `url(…)` source. base is the URL of the
// stylesheet or the directory of a CSS file; relative references are
// resolved against it.
func (l *Loader) fetchURL(ctx context.Context, ref string, base string) (*font.ScalableFont, error) {
	if strings.HasPrefix(strings.ToLower(ref), "data:") {
		data, err := DecodeDataURI(ref)
		if err != nil {
			return nil, err
		}
		return font.ParseOpenTypeFont(data)
	}
	u, err := url.Parse(ref)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid font URL %s", ref)
	}
	if !u.IsAbs() && isRemote(base) {
		if b, err := url.Parse(base); err == nil {
			u = b.ResolveReference(u)
		}
	}
	switch u.Scheme {
	case "http", "https":
		fpath, err := resources.CachedDownload(ctx, l.conf, u.String(), "fonts", "css")
		if err != nil {
			return nil, err
		}
		return font.LoadOpenTypeFont(fpath)
	case "file":
		return font.LoadOpenTypeFont(filepath.FromSlash(u.Path))
	case "":
		fpath := filepath.FromSlash(u.Path)
		if !filepath.IsAbs(fpath) && base != "" && !isRemote(base) {
			fpath = filepath.Join(base, fpath)
		}
		return font.LoadOpenTypeFont(fpath)
	}
	return nil, core.Error(core.EUNSUPPORTED, "cannot load fonts from %s", ref)
}

func isRemote(base string) bool {
	b := strings.ToLower(base)
	return strings.HasPrefix(b, "http://") || strings.HasPrefix(b, "https://")
}

// loadLocal loads a font given by a `local(…)` source from the system.
func loadLocal(name string) (*font.ScalableFont, error) {
	f, err := resources.LoadSystemFont(strings.ReplaceAll(name, " ", ""))
	if err != nil {
		f, err = resources.LoadSystemFont(name)
	}
	return f, err
}

// DecodeDataURI decodes the payload of a `data:` URI (RFC 2397).
func DecodeDataURI(uri string) ([]byte, error) {
	if !strings.HasPrefix(strings.ToLower(uri), "data:") {
		return nil, core.Error(core.EINVALID, "not a data URI")
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, core.Error(core.EINVALID, "malformed data URI")
	}
	meta, payload := uri[5:comma], uri[comma+1:]
	if strings.HasSuffix(strings.ToLower(meta), ";base64") {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "malformed base64 payload in data URI")
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "malformed data URI")
	}
	return []byte(s), nil
}
