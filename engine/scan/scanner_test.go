package scan

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/glyphscope/core/glyphs"
	"github.com/npillmayer/glyphscope/engine/probe"
	"github.com/npillmayer/glyphscope/engine/probe/probetest"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConf = testconfig.Conf{
	"scan-batch":    "10",
	"scan-delay-ms": "0",
}

func letters() []rune {
	var runes []rune
	for r := 'a'; r <= 'y'; r++ {
		runes = append(runes, r)
	}
	return runes
}

func vowels() *probetest.Measurer {
	return probetest.Covering("Test", 'a', 'e', 'i', 'o', 'u')
}

type collector struct {
	sync.Mutex
	progress []Progress
}

func (c *collector) observe(p Progress) {
	c.Lock()
	defer c.Unlock()
	c.progress = append(c.progress, p)
}

func (c *collector) all() []Progress {
	c.Lock()
	defer c.Unlock()
	return append([]Progress(nil), c.progress...)
}

func TestScanPublishesBatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.scan")
	defer teardown()
	//
	s := NewScanner(vowels(), testConf).WithCandidates(letters())
	c := &collector{}
	s.Observe(c.observe)
	gen := s.Start(context.Background(), "Test", nil)
	s.Wait()
	progress := c.all()
	require.Len(t, progress, 3, "25 candidates in batches of 10")
	size := 0
	for i, p := range progress {
		assert.Equal(t, gen, p.Generation)
		assert.GreaterOrEqual(t, len(p.Records), size, "published collection never shrinks")
		size = len(p.Records)
		assert.Equal(t, i < 2, p.Scanning)
	}
	var chars []string
	for _, r := range progress[2].Records {
		chars = append(chars, r.Character)
	}
	assert.Equal(t, []string{"a", "e", "i", "o", "u"}, chars)
	assert.Equal(t, progress[2], s.Last())
}

func TestScanIsDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.scan")
	defer teardown()
	//
	s := NewScanner(vowels(), testConf)
	s.Start(context.Background(), "Test", nil)
	s.Wait()
	first := s.Last().Records
	s.Start(context.Background(), "Test", nil)
	s.Wait()
	second := s.Last().Records
	require.NotEmpty(t, first)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("scans differ (-first +second):\n%s", diff)
	}
	direct := Scan(context.Background(), vowels(), "Test", glyphs.Candidates())
	if diff := cmp.Diff(first, direct); diff != "" {
		t.Errorf("synchronous scan differs (-async +sync):\n%s", diff)
	}
}

func TestScanWithoutFamily(t *testing.T) {
	s := NewScanner(vowels(), testConf)
	c := &collector{}
	s.Observe(c.observe)
	s.Start(context.Background(), "", nil)
	s.Wait()
	progress := c.all()
	require.Len(t, progress, 1)
	assert.Empty(t, progress[0].Records)
	assert.False(t, progress[0].Scanning)
	//
	s = NewScanner(vowels(), testConf).WithCandidates(nil)
	s.Start(context.Background(), "Test", nil)
	s.Wait()
	assert.Empty(t, s.Last().Records)
	assert.False(t, s.Last().Scanning)
}

// blocking is a measurer which blocks its first measurement until released.
type blocking struct {
	probe.TextMeasurer
	once     sync.Once
	entered  chan struct{}
	released chan struct{}
}

func (b *blocking) Measure(text string, stack []string) (probe.Dimensions, error) {
	b.once.Do(func() {
		close(b.entered)
		<-b.released
	})
	return b.TextMeasurer.Measure(text, stack)
}

func TestSupersededScanDoesNotPublish(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.scan")
	defer teardown()
	//
	s := NewScanner(vowels(), testConf).WithCandidates(letters())
	c := &collector{}
	s.Observe(c.observe)
	slow := &blocking{
		TextMeasurer: vowels(),
		entered:      make(chan struct{}),
		released:     make(chan struct{}),
	}
	genA := s.Start(context.Background(), "Test", slow)
	<-slow.entered
	s.mutex.Lock()
	doneA := s.done
	s.mutex.Unlock()
	genB := s.Start(context.Background(), "Test", nil)
	assert.Greater(t, genB, genA)
	s.Wait()
	close(slow.released)
	<-doneA
	for _, p := range c.all() {
		assert.Equal(t, genB, p.Generation, "scan #%d must not publish", genA)
	}
	assert.Len(t, s.Last().Records, 5)
}

func TestCancelDiscardsResults(t *testing.T) {
	s := NewScanner(vowels(), testConf).WithCandidates(letters())
	c := &collector{}
	s.Observe(c.observe)
	slow := &blocking{
		TextMeasurer: vowels(),
		entered:      make(chan struct{}),
		released:     make(chan struct{}),
	}
	s.Start(context.Background(), "Test", slow)
	<-slow.entered
	s.Cancel()
	close(slow.released)
	s.Wait()
	assert.Empty(t, c.all())
}

func TestMeasurementFailureSkipsCandidate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.scan")
	defer teardown()
	//
	m := vowels()
	m.Fails = func(r rune) bool { return r == 'e' }
	s := NewScanner(m, testConf).WithCandidates(letters())
	c := &collector{}
	s.Observe(c.observe)
	s.Start(context.Background(), "Test", nil)
	s.Wait()
	progress := c.all()
	require.Len(t, progress, 3, "25 candidates in batches of 10")
	final := progress[2]
	assert.False(t, final.Scanning)
	var chars []string
	for _, r := range final.Records {
		chars = append(chars, r.Character)
	}
	assert.Equal(t, []string{"a", "i", "o", "u"}, chars)
}

func TestCloseJoinsSupersededScans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.scan")
	defer teardown()
	//
	s := NewScanner(vowels(), testConf).WithCandidates(letters())
	slow := &blocking{
		TextMeasurer: vowels(),
		entered:      make(chan struct{}),
		released:     make(chan struct{}),
	}
	s.Start(context.Background(), "Test", slow)
	<-slow.entered
	s.Start(context.Background(), "Test", nil)
	s.Wait()
	closed := make(chan struct{})
	go func() {
		s.Close()
		close(closed)
	}()
	select {
	case <-closed:
		t.Fatal("Close returned while a superseded scan is still measuring")
	case <-time.After(50 * time.Millisecond):
	}
	close(slow.released)
	<-closed
}

// counting counts measurements, for checking that cancelled scans stop
// measuring.
type counting struct {
	*probetest.Measurer
	delay time.Duration
}

func (c counting) Measure(text string, stack []string) (probe.Dimensions, error) {
	time.Sleep(c.delay)
	return c.Measurer.Measure(text, stack)
}

func TestCloseStopsWithinBatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.scan")
	defer teardown()
	//
	m := vowels()
	conf := testconfig.Conf{"scan-batch": "50", "scan-delay-ms": "0"}
	s := NewScanner(counting{Measurer: m, delay: 2 * time.Millisecond}, conf).WithCandidates(letters())
	s.Start(context.Background(), "Test", nil)
	time.Sleep(10 * time.Millisecond)
	s.Close()
	calls := m.Calls()
	assert.Less(t, calls, 2*len(letters()), "scan must stop before probing every candidate")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, m.Calls(), "no measurements after Close")
}
