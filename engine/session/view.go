package session

import (
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/glyphs"
	"github.com/npillmayer/glyphscope/engine/preview"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/npillmayer/glyphscope/engine/scan"
)

// view is the glyph view of a session: the records found by the scan for
// the current font, together with search query and category filter.
type view struct {
	records  []glyphs.Record
	scanning bool
	query    string
	category glyphs.Category
}

func newView() view {
	return view{category: glyphs.CategoryAll}
}

// reset drops the records of the previous font. Query and category are kept.
func (v *view) reset() {
	v.records = nil
	v.scanning = true
}

// update is the scan observer of a session.
func (s *Session) update(p scan.Progress) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.view.records = p.Records
	s.view.scanning = p.Scanning
	// categories may still show up while scanning
	if !p.Scanning && s.view.category != glyphs.CategoryAll {
		available := glyphs.AvailableCategories(p.Records)
		if !glyphs.HasCategory(available, s.view.category) {
			tracer().Debugf("category %s no longer available", s.view.category)
			s.view.category = glyphs.CategoryAll
		}
	}
}

// Records returns every record found for the current font so far.
func (s *Session) Records() []glyphs.Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.view.records
}

// Scanning is true while the glyph scan for the current font is running.
func (s *Session) Scanning() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.view.scanning
}

// SetQuery sets the free-text search of the glyph view.
func (s *Session) SetQuery(query string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.view.query = query
}

// Query returns the free-text search of the glyph view.
func (s *Session) Query() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.view.query
}

// SetCategory sets the category filter of the glyph view. An empty
// category selects every category.
func (s *Session) SetCategory(c glyphs.Category) {
	if c == "" {
		c = glyphs.CategoryAll
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.view.category = c
}

// Category returns the category filter of the glyph view.
func (s *Session) Category() glyphs.Category {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.view.category
}

// Visible returns the records passing the category filter and the search
// query of the glyph view.
func (s *Session) Visible() []glyphs.Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return glyphs.Filter(s.view.records, s.view.category, s.view.query)
}

// Categories returns the categories occurring in the records found so far.
func (s *Session) Categories() []glyphs.CategoryOption {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return glyphs.AvailableCategories(s.view.records)
}

// Preview renders a sample text with the current font. See package preview.
func (s *Session) Preview(text string) (*preview.Preview, error) {
	s.mutex.RLock()
	family, factory := s.state.Family, s.measurer
	style, weight := font.ParseCSSStyle(s.state.Style), font.ParseCSSWeight(s.state.Weight)
	s.mutex.RUnlock()
	p, err := preview.Render(family, text, func(size float32) probe.TextMeasurer {
		return factory(style, weight, size)
	})
	if err != nil {
		return nil, s.fail(err)
	}
	return p, nil
}
