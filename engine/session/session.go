package session

import (
	"context"
	"sync"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/font"
	"github.com/npillmayer/glyphscope/core/font/fontregistry"
	"github.com/npillmayer/glyphscope/core/locate/resources"
	"github.com/npillmayer/glyphscope/engine/fontcss"
	"github.com/npillmayer/glyphscope/engine/loader"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/npillmayer/glyphscope/engine/scan"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// Defaults of a font selection.
const (
	DefaultWeight = "400"
	DefaultStyle  = "normal"
)

// State is a snapshot of the font context.
type State struct {
	Family     string // family the glyph scan runs for
	Weight     string
	Style      string
	Loaded     bool
	Error      string // user message of the last error, if any
	Source     loader.Source
	URL        string // Google Fonts stylesheet URL
	TypekitURL string
	FontInfos  []fontcss.FontInfo
	Selected   Selection // selection within FontInfos
	Generation uint64
}

// Selection is a family variant chosen from the families of a stylesheet.
type Selection struct {
	Font   string
	Weight string
	Style  string
}

func defaultState(source loader.Source) State {
	return State{
		Weight:   DefaultWeight,
		Style:    DefaultStyle,
		Source:   source,
		Selected: Selection{Weight: DefaultWeight, Style: DefaultStyle},
	}
}

// MeasurerFactory creates text measurers for a font variant at a pixel size.
type MeasurerFactory func(style xfont.Style, weight xfont.Weight, size float32) probe.TextMeasurer

// Session is the font context of an interactive session. All methods are
// safe for concurrent use.
type Session struct {
	conf     schuko.Configuration
	registry *fontregistry.Registry
	loader   *loader.Loader
	scanner  *scan.Scanner
	measurer MeasurerFactory
	size     float32
	ctx      context.Context
	stop     context.CancelFunc
	mutex    sync.RWMutex
	state    State
	view     view
	families map[string]bool // families loaded into the registry by this session
}

// New creates a session with an empty font registry. The generic fallback
// font (see resources.ResolveFallbackFont) is registered as family
// probe.FallbackFamily. conf may be nil.
func New(conf schuko.Configuration) *Session {
	return NewWithRegistry(conf, fontregistry.NewRegistry())
}

// NewWithRegistry creates a session working on a given font registry.
func NewWithRegistry(conf schuko.Configuration, registry *fontregistry.Registry) *Session {
	if !registry.HasFamily(probe.FallbackFamily) {
		fallback := resources.ResolveFallbackFont(conf)
		registry.Register(probe.FallbackFamily, xfont.StyleNormal, xfont.WeightNormal, fallback)
		tracer().Infof("using %s as fallback font", fallback.Fontname)
	}
	s := &Session{
		conf:     conf,
		registry: registry,
		loader:   loader.New(conf, registry),
		size:     float32(core.IntSetting(conf, "probe-size")),
		state:    defaultState(loader.SourceTypekit),
		view:     newView(),
		families: make(map[string]bool),
	}
	s.measurer = func(style xfont.Style, weight xfont.Weight, size float32) probe.TextMeasurer {
		return probe.NewFaceMeasurer(registry, size).WithVariant(style, weight)
	}
	s.ctx, s.stop = context.WithCancel(context.Background())
	s.scanner = scan.NewScanner(nil, conf)
	s.scanner.Observe(s.update)
	return s
}

// UseMeasurer replaces the text measurers of the session. It has to be
// called before the first font is loaded.
func (s *Session) UseMeasurer(m MeasurerFactory) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.measurer = m
}

// UseCandidates replaces the candidate code points of glyph scans. It has
// to be called before the first font is loaded.
func (s *Session) UseCandidates(candidates []rune) {
	s.scanner.WithCandidates(candidates)
}

// Registry returns the font registry of the session.
func (s *Session) Registry() *fontregistry.Registry {
	return s.registry
}

// Scanner returns the glyph scanner of the session.
func (s *Session) Scanner() *scan.Scanner {
	return s.scanner
}

// Close stops a running glyph scan and returns after every scan goroutine
// has terminated. The session must not be used afterwards.
func (s *Session) Close() {
	s.stop()
	s.scanner.Close()
}

// State returns a snapshot of the font context.
func (s *Session) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	st := s.state
	st.FontInfos = append([]fontcss.FontInfo(nil), s.state.FontInfos...)
	return st
}

// LoadFont selects a font family, marks the context as loaded and clears
// the error. Empty weight and style default to "400" and "normal". The
// generation is bumped and the glyph scan restarts for the new selection.
func (s *Session) LoadFont(family, weight, style string) uint64 {
	if weight == "" {
		weight = DefaultWeight
	}
	if style == "" {
		style = DefaultStyle
	}
	s.scanner.Cancel() // no publications of the old scan after this point
	s.mutex.Lock()
	s.state.Family, s.state.Weight, s.state.Style = family, weight, style
	s.state.Loaded = true
	s.state.Error = ""
	s.view.reset()
	m := s.measurer(font.ParseCSSStyle(style), font.ParseCSSWeight(weight), s.size)
	s.mutex.Unlock()
	gen := s.scanner.Start(s.ctx, family, m)
	s.mutex.Lock()
	if gen > s.state.Generation {
		s.state.Generation = gen
	}
	s.mutex.Unlock()
	tracer().Infof("font %q (%s %s) loaded, generation %d", family, weight, style, gen)
	return gen
}

// SetError sets the user message of the last error. An empty message
// clears the error.
func (s *Session) SetError(msg string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.state.Error = msg
	if msg != "" {
		tracer().Errorf("%s", msg)
	}
}

// fail records the user message of err and returns err.
func (s *Session) fail(err error) error {
	s.SetError(core.UserMessage(err))
	return err
}

// ResetAll cancels the glyph scan, removes every font this session loaded
// from the registry and resets the font context to its defaults. The font
// source is kept.
func (s *Session) ResetAll() {
	s.scanner.Cancel()
	s.loader.ForgetImport()
	s.mutex.Lock()
	families := s.families
	s.families = make(map[string]bool)
	gen := s.scanner.Generation()
	s.state = defaultState(s.state.Source)
	s.state.Generation = gen
	s.view = newView()
	s.mutex.Unlock()
	for family := range families {
		if family != probe.FallbackFamily {
			s.registry.RemoveFamily(family)
		}
	}
	tracer().Infof("font context reset")
}

// SelectFont selects a family of the current stylesheet with its preferred
// weight and style. Families unknown to the stylesheet are resolved
// through the registry, system fonts, fontconfig and the Google Fonts
// directory (see resources.ResolveTypeCase).
func (s *Session) SelectFont(ctx context.Context, family string) error {
	st := s.State()
	if fi, ok := fontcss.Find(st.FontInfos, family); ok {
		return s.selectVariant(ctx, fi.Family, fontcss.PreferredWeight(fi.Weights),
			fontcss.PreferredStyle(fi.Styles))
	}
	return s.selectVariant(ctx, family, st.Weight, st.Style)
}

// SelectWeight selects another weight of the current family.
func (s *Session) SelectWeight(ctx context.Context, weight string) error {
	st := s.State()
	if st.Family == "" {
		return s.fail(core.Error(core.EMISSING, "Please load a font first"))
	}
	return s.selectVariant(ctx, st.Family, weight, st.Style)
}

// SelectStyle selects another style of the current family.
func (s *Session) SelectStyle(ctx context.Context, style string) error {
	st := s.State()
	if st.Family == "" {
		return s.fail(core.Error(core.EMISSING, "Please load a font first"))
	}
	return s.selectVariant(ctx, st.Family, st.Weight, style)
}

func (s *Session) selectVariant(ctx context.Context, family, weight, style string) error {
	st := s.State()
	if fi, ok := fontcss.Find(st.FontInfos, family); ok {
		if !contains(fi.Weights, weight) || !contains(fi.Styles, style) {
			return s.fail(core.Error(core.EINVALID, "%s is not available in weight %s, style %s",
				fi.Family, weight, style))
		}
		if st.Source == loader.SourceGoogle {
			if _, err := s.loader.LoadFaces(ctx, st.FontInfos, st.URL, fi.Family, weight, style); err != nil {
				return s.fail(err)
			}
		}
		family = fi.Family
	} else if !s.registry.HasFamily(family) {
		tc, err := resources.ResolveTypeCase(ctx, s.conf, s.registry, family,
			font.ParseCSSStyle(style), font.ParseCSSWeight(weight), s.size).Await(ctx)
		if err != nil {
			return s.fail(core.WrapError(err, core.EMISSING, "Font %s not found", family))
		}
		tracer().Debugf("resolved %s to %s", family, tc.ScalableFontParent().Fontname)
	}
	s.mutex.Lock()
	s.state.Selected = Selection{Font: family, Weight: weight, Style: style}
	s.families[family] = true
	s.mutex.Unlock()
	s.LoadFont(family, weight, style)
	return nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
