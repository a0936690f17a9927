package session

import (
	"context"

	"github.com/npillmayer/glyphscope/engine/loader"
)

// LoadGoogleFonts loads a Google Fonts stylesheet (URL or embed code) and
// selects its first family.
func (s *Session) LoadGoogleFonts(ctx context.Context, input string) error {
	s.setSource(loader.SourceGoogle)
	result, err := s.loader.LoadGoogleFonts(ctx, input)
	if err != nil {
		return s.fail(err)
	}
	s.apply(result)
	return nil
}

// LoadTypekit loads an Adobe Typekit stylesheet (URL or embed code) and
// selects the family it declares. A stylesheet without a recognizable
// family results in a loaded context for the empty family, which has no
// glyphs.
func (s *Session) LoadTypekit(ctx context.Context, input string) error {
	s.setSource(loader.SourceTypekit)
	result, err := s.loader.LoadTypekit(ctx, input)
	if err != nil {
		return s.fail(err)
	}
	s.apply(result)
	return nil
}

// ImportFile imports a font file from disk.
func (s *Session) ImportFile(path string) error {
	s.setSource(loader.SourceImport)
	result, err := s.loader.ImportFile(path)
	if err != nil {
		return s.fail(err)
	}
	s.apply(result)
	return nil
}

// ImportFont imports a font from binary data, named like a font file.
func (s *Session) ImportFont(name string, data []byte, mimeType string) error {
	s.setSource(loader.SourceImport)
	result, err := s.loader.ImportFont(name, data, mimeType)
	if err != nil {
		return s.fail(err)
	}
	s.apply(result)
	return nil
}

// InjectCSS registers the fonts of a @font-face stylesheet. Relative font
// references are resolved against base.
func (s *Session) InjectCSS(ctx context.Context, stylesheet, base string) error {
	result, err := s.loader.InjectCSS(ctx, stylesheet, base)
	if err != nil {
		return s.fail(err)
	}
	s.apply(result)
	return nil
}

// InjectCSSFile registers the fonts of a @font-face stylesheet on disk.
func (s *Session) InjectCSSFile(ctx context.Context, path string) error {
	result, err := s.loader.InjectCSSFile(ctx, path)
	if err != nil {
		return s.fail(err)
	}
	s.apply(result)
	return nil
}

func (s *Session) setSource(source loader.Source) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state.Source = source
}

// apply takes over the result of a loader and loads its font.
func (s *Session) apply(result *loader.Result) {
	s.mutex.Lock()
	s.state.Source = result.Source
	switch result.Source {
	case loader.SourceGoogle:
		s.state.URL = result.URL
	case loader.SourceTypekit:
		s.state.TypekitURL = result.URL
	}
	s.state.FontInfos = result.FontInfos
	s.state.Selected = Selection{Font: result.Family, Weight: result.Weight, Style: result.Style}
	for _, fi := range result.FontInfos {
		s.families[fi.Family] = true
	}
	if result.Family != "" && result.Source != loader.SourceImport {
		s.families[result.Family] = true
	}
	s.mutex.Unlock()
	s.LoadFont(result.Family, result.Weight, result.Style)
}
