package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko"
)

// Default values for configuration keys.
var defaultSettings = map[string]string{
	"app-key":          "glyphscope",
	"fallback-font":    "DejaVuSerif",
	"probe-size":       "32",
	"scan-batch":       "50",
	"scan-delay-ms":    "10",
	"http-timeout-s":   "30",
	"google-fonts-api": "https://www.googleapis.com/webfonts/v1/webfonts",
}

// DefaultSetting returns the built-in default for a configuration key, or ""
// if the key has none.
func DefaultSetting(key string) string {
	return defaultSettings[key]
}

// DefaultSettings returns a copy of all built-in configuration defaults.
func DefaultSettings() map[string]string {
	m := make(map[string]string, len(defaultSettings))
	for k, v := range defaultSettings {
		m[k] = v
	}
	return m
}

// StringSetting reads a string value from conf, falling back to the built-in
// default. conf may be nil.
func StringSetting(conf schuko.Configuration, key string) string {
	if conf != nil {
		if s := strings.TrimSpace(conf.GetString(key)); s != "" {
			return s
		}
	}
	return defaultSettings[key]
}

// IntSetting reads an integer value from conf. Missing or malformed values
// yield the built-in default (or 0, if there is none).
func IntSetting(conf schuko.Configuration, key string) int {
	if n, err := strconv.Atoi(StringSetting(conf, key)); err == nil {
		return n
	}
	n, _ := strconv.Atoi(defaultSettings[key])
	return n
}

// DurationSetting reads an integer setting and scales it by unit.
func DurationSetting(conf schuko.Configuration, key string, unit time.Duration) time.Duration {
	return time.Duration(IntSetting(conf, key)) * unit
}
