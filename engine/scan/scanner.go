package scan

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/npillmayer/glyphscope/core"
	"github.com/npillmayer/glyphscope/core/glyphs"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/npillmayer/schuko"
)

// Progress is published to observers after each batch of a scan.
// Records is never modified after publication.
type Progress struct {
	Records    []glyphs.Record
	Scanning   bool   // false for the final publication of a scan
	Generation uint64 // generation of the scan which produced this progress
}

// Observer is called with the progress of scans, from the scanning
// goroutine. Observers must not start or cancel scans synchronously.
type Observer func(Progress)

// Scanner runs glyph scans, one at a time.
type Scanner struct {
	measurer   probe.TextMeasurer
	fallback   string
	batchSize  int
	delay      time.Duration
	candidates []rune
	generation uint64     // accessed atomically
	pubMutex   sync.Mutex // serializes publication and generation changes
	mutex      sync.Mutex // guards fields below
	cancel     context.CancelFunc
	done       chan struct{}
	observers  []Observer
	last       Progress
	running    sync.WaitGroup // every scan goroutine, superseded ones included
}

// NewScanner creates a scanner probing with measurer m. Batch size and
// delay are taken from configuration keys `scan-batch` and `scan-delay-ms`.
// conf may be nil.
func NewScanner(m probe.TextMeasurer, conf schuko.Configuration) *Scanner {
	s := &Scanner{
		measurer:   m,
		fallback:   probe.FallbackFamily,
		batchSize:  core.IntSetting(conf, "scan-batch"),
		delay:      core.DurationSetting(conf, "scan-delay-ms", time.Millisecond),
		candidates: glyphs.Candidates(),
	}
	if s.batchSize <= 0 {
		s.batchSize = 50
	}
	if s.delay < 0 {
		s.delay = 0
	}
	return s
}

// WithCandidates replaces the candidate list of a scanner. It has to be
// called before the first scan is started.
func (s *Scanner) WithCandidates(candidates []rune) *Scanner {
	s.candidates = append([]rune(nil), candidates...)
	return s
}

// Observe adds an observer for all subsequent publications.
func (s *Scanner) Observe(o Observer) {
	if o == nil {
		return
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.observers = append(s.observers, o)
}

// Generation returns the generation of the most recent scan.
func (s *Scanner) Generation() uint64 {
	return atomic.LoadUint64(&s.generation)
}

// Last returns the most recent publication.
func (s *Scanner) Last() Progress {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.last
}

// Start starts a scan for family, superseding any running scan, and returns
// the generation of the new scan. If m is nil, the scanner's measurer is
// used. An empty family results in an empty, finished scan.
func (s *Scanner) Start(ctx context.Context, family string, m probe.TextMeasurer) uint64 {
	if m == nil {
		m = s.measurer
	}
	scanctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	gen := s.supersede(cancel, done)
	tracer().Infof("starting scan #%d for font family %q", gen, family)
	s.running.Add(1)
	go s.run(scanctx, gen, family, m, done)
	return gen
}

// Cancel stops the running scan, if any. Results of the cancelled scan are
// discarded.
func (s *Scanner) Cancel() {
	s.supersede(nil, nil)
}

// Close cancels the running scan and waits until every scan goroutine,
// including superseded ones, has terminated.
func (s *Scanner) Close() {
	s.Cancel()
	s.running.Wait()
}

// Wait blocks until the most recently started scan has terminated.
// Superseded scans may still be winding down; see Close.
func (s *Scanner) Wait() {
	s.mutex.Lock()
	done := s.done
	s.mutex.Unlock()
	if done != nil {
		<-done
	}
}

// supersede bumps the generation and cancels the running scan.
func (s *Scanner) supersede(cancel context.CancelFunc, done chan struct{}) uint64 {
	s.pubMutex.Lock()
	gen := atomic.AddUint64(&s.generation, 1)
	s.pubMutex.Unlock()
	s.mutex.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	if done != nil {
		s.done = done
	}
	s.mutex.Unlock()
	return gen
}

func (s *Scanner) current(gen uint64) bool {
	return atomic.LoadUint64(&s.generation) == gen
}

func (s *Scanner) run(ctx context.Context, gen uint64, family string, m probe.TextMeasurer,
	done chan struct{}) {
	//
	defer s.running.Done()
	defer close(done)
	var acc []glyphs.Record
	if family == "" || m == nil || len(s.candidates) == 0 {
		s.publish(gen, acc, false)
		return
	}
	for start := 0; start < len(s.candidates); start += s.batchSize {
		if ctx.Err() != nil || !s.current(gen) {
			tracer().Debugf("scan #%d superseded", gen)
			return
		}
		end := start + s.batchSize
		if end > len(s.candidates) {
			end = len(s.candidates)
		}
		for _, cp := range s.candidates[start:end] {
			if ctx.Err() != nil {
				tracer().Debugf("scan #%d cancelled", gen)
				return
			}
			if probe.ProbeWith(m, family, s.fallback, string(cp)) {
				acc = append(acc, glyphs.NewRecord(cp))
			}
		}
		finished := end == len(s.candidates)
		if !s.publish(gen, acc, !finished) {
			return
		}
		if finished {
			break
		}
		if !sleep(ctx, s.delay) {
			return
		}
	}
	tracer().Infof("scan #%d for %q found %d supported characters", gen, family, len(acc))
}

// publish hands a snapshot of acc to the observers, unless generation gen
// has been superseded.
func (s *Scanner) publish(gen uint64, acc []glyphs.Record, scanning bool) bool {
	s.pubMutex.Lock()
	defer s.pubMutex.Unlock()
	if !s.current(gen) {
		return false
	}
	p := Progress{
		Records:    append([]glyphs.Record(nil), acc...),
		Scanning:   scanning,
		Generation: gen,
	}
	s.mutex.Lock()
	s.last = p
	observers := append([]Observer(nil), s.observers...)
	s.mutex.Unlock()
	for _, o := range observers {
		o(p)
	}
	return true
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Scan probes all candidates for family synchronously and returns the
// supported ones, in candidate order.
func Scan(ctx context.Context, m probe.TextMeasurer, family string, candidates []rune) []glyphs.Record {
	var records []glyphs.Record
	for _, cp := range candidates {
		if ctx.Err() != nil {
			break
		}
		if probe.Probe(m, family, string(cp)) {
			records = append(records, glyphs.NewRecord(cp))
		}
	}
	return records
}
