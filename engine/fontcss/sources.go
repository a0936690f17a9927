package fontcss

import (
	"strings"

	"github.com/npillmayer/glyphscope/core/font"
)

// ParseSources splits the value of a `src` descriptor into its entries, e.g.
//
//    local('Roboto'), url(https://fonts.gstatic.com/roboto.woff2) format('woff2')
//
// Commas inside parentheses or quotes (as in data: URIs) do not separate
// entries.
func ParseSources(src string) []Source {
	var sources []Source
	for _, entry := range splitTopLevel(src, ',') {
		var s Source
		if arg, ok := function(entry, "url"); ok {
			s.URL = Unquote(arg)
		} else if arg, ok := function(entry, "local"); ok {
			s.Local = Unquote(arg)
		} else {
			continue
		}
		if arg, ok := function(entry, "format"); ok {
			s.Format = strings.ToLower(Unquote(arg))
		}
		sources = append(sources, s)
	}
	return sources
}

// FontFormat returns the font format of a source, judging from the format
// hint or, if absent, from the URL's file extension.
func (s Source) FontFormat() font.Format {
	if s.Format != "" {
		return font.FormatFromCSS(s.Format)
	}
	u := strings.ToLower(s.URL)
	if i := strings.IndexAny(u, "?#"); i >= 0 && !strings.HasPrefix(u, "data:") {
		u = u[:i]
	}
	switch {
	case strings.HasPrefix(u, "data:"):
		mime := u[5:]
		if i := strings.IndexAny(mime, ";,"); i >= 0 {
			mime = mime[:i]
		}
		return formatFromMIME(mime)
	case strings.HasSuffix(u, ".woff2"):
		return font.FormatWOFF2
	case strings.HasSuffix(u, ".woff"):
		return font.FormatWOFF
	case strings.HasSuffix(u, ".otf"):
		return font.FormatOpenType
	case strings.HasSuffix(u, ".ttf"):
		return font.FormatTrueType
	case strings.HasSuffix(u, ".ttc"):
		return font.FormatCollection
	}
	return font.FormatUnknown
}

func formatFromMIME(mime string) font.Format {
	switch mime {
	case "font/woff2", "application/font-woff2":
		return font.FormatWOFF2
	case "font/woff", "application/font-woff", "application/x-font-woff":
		return font.FormatWOFF
	case "font/otf", "font/opentype", "application/x-font-otf", "application/font-sfnt":
		return font.FormatOpenType
	case "font/ttf", "font/truetype", "application/x-font-ttf", "application/x-font-truetype":
		return font.FormatTrueType
	}
	return font.FormatUnknown
}

// Usable is true if the source is a URL to a font in a format we are able
// to parse. Sources without any hint are considered usable.
func (s Source) Usable() bool {
	if s.URL == "" {
		return false
	}
	f := s.FontFormat()
	return f == font.FormatUnknown || f.Parseable()
}

// function extracts the argument of a CSS function call like `url(…)`
// from s.
func function(s, name string) (string, bool) {
	lower := strings.ToLower(s)
	start := strings.Index(lower, name+"(")
	if start < 0 {
		return "", false
	}
	start += len(name) + 1
	depth, quote := 0, byte(0)
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth == 0 {
				return strings.TrimSpace(s[start:i]), true
			}
			depth--
		}
	}
	return "", false
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, quote, last := 0, byte(0), 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(s[last:i]))
			last = i + 1
		}
	}
	if rest := strings.TrimSpace(s[last:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}
