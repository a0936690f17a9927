package fontcss

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/glyphscope/core"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var stylesheetLink = cascadia.MustCompile(`link[rel~="stylesheet"][href]`)

// StylesheetLinks returns the href values of all stylesheet links of an HTML
// fragment, in document order.
func StylesheetLinks(fragment string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML embed code")
	}
	var hrefs []string
	for _, n := range stylesheetLink.MatchAll(doc) {
		for _, a := range n.Attr {
			if a.Key == "href" && strings.TrimSpace(a.Val) != "" {
				hrefs = append(hrefs, strings.TrimSpace(a.Val))
			}
		}
	}
	return hrefs, nil
}

// StylesheetURL accepts either a stylesheet URL or an HTML embed snippet and
// returns the URL of the (first) stylesheet. An empty input results in an
// error with code EINVALID and user message "Please enter a <what> URL".
func StylesheetURL(input string, what string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", core.Error(core.EINVALID, "Please enter a %s URL", what)
	}
	if !strings.HasPrefix(input, "<") {
		return input, nil
	}
	hrefs, err := StylesheetLinks(input)
	if err != nil {
		return "", err
	}
	if len(hrefs) == 0 {
		return "", core.Error(core.EINVALID, "Please enter a %s URL", what)
	}
	tracer().Debugf("embed code links to %s", hrefs[0])
	return hrefs[0], nil
}

// LinkSnippet creates the HTML embed code for a stylesheet URL.
func LinkSnippet(href string) string {
	link := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Link,
		Data:     "link",
		Attr: []html.Attribute{
			{Key: "rel", Val: "stylesheet"},
			{Key: "href", Val: href},
		},
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, link); err != nil {
		tracer().Errorf("cannot render link: %v", err)
		return ""
	}
	return buf.String()
}
