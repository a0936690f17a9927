package resources

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/schuko"
)

// HTTPClient returns a client for downloads, with a timeout taken from
// configuration key `http-timeout-s`.
func HTTPClient(conf schuko.Configuration) *http.Client {
	return &http.Client{
		Timeout: core.DurationSetting(conf, "http-timeout-s", time.Second),
	}
}

// Fetch GETs a remote resource and returns its body. Responses with a status
// other than 200 result in an error with code ECONNECTION.
func Fetch(ctx context.Context, conf schuko.Configuration, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid URL: %s", url)
	}
	resp, err := HTTPClient(conf).Do(req)
	if err != nil {
		tracer().Errorf("request for %s failed: %v", url, err)
		return nil, core.WrapError(err, core.ECONNECTION, "Failed to fetch %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		tracer().Errorf("request for %s not OK: %v", url, resp.Status)
		return nil, core.Error(core.ECONNECTION, "Failed to fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.WrapError(err, core.ECONNECTION, "Failed to fetch %s", url)
	}
	return data, nil
}

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(ctx context.Context, conf schuko.Configuration, filepath string, url string) error {
	data, err := Fetch(ctx, conf, url)
	if err != nil {
		return err
	}
	if err = os.WriteFile(filepath, data, 0644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write cache file %s", filepath)
	}
	return nil
}

// CachedDownload downloads url into a cache sub-folder, if it is not present
// there already, and returns the path of the cached file. Cache file names are
// derived from a hash of the URL, keeping the URL's file extension.
func CachedDownload(ctx context.Context, conf schuko.Configuration, url string, subfolders ...string) (string, error) {
	cachedir, err := CacheDirPath(conf, subfolders...)
	if err != nil {
		return "", err
	}
	fpath := filepath.Join(cachedir, cacheFileName(url))
	if fi, err := os.Stat(fpath); err == nil && fi.Size() > 0 {
		tracer().Debugf("%s found in cache", url)
		return fpath, nil
	}
	tracer().Infof("downloading %s", url)
	if err = DownloadCachedFile(ctx, conf, fpath, url); err != nil {
		return "", err
	}
	return fpath, nil
}

func cacheFileName(rawurl string) string {
	h := sha1.Sum([]byte(rawurl))
	name := hex.EncodeToString(h[:10])
	if u, err := url.Parse(rawurl); err == nil {
		ext := strings.ToLower(path.Ext(u.Path))
		if len(ext) > 1 && len(ext) <= 6 {
			name += ext
		}
	}
	return name
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()` (or
// configuration key `cache-dir`), plus an application specific key, taken
// as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := core.StringSetting(conf, "app-key")
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	cachedir := core.StringSetting(conf, "cache-dir")
	if cachedir == "" {
		var err error
		if cachedir, err = os.UserCacheDir(); err != nil {
			return "", core.WrapError(err, core.EMISSING, "user cache directory not set")
		}
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Debugf("caching in %s", cachedir)
	_, err := os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", core.WrapError(err, core.EINTERNAL, "cannot create cache directory %s", cachedir)
		}
	}
	return cachedir, nil
}
