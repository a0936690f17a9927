package glyphs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glyphscope.glyphs")
	defer teardown()
	//
	c := Candidates()
	require.Len(t, c, 95+96+128+208+273)
	assert.Equal(t, rune(32), c[0])
	assert.Equal(t, rune(126), c[94])
	assert.Equal(t, rune(160), c[95])
	assert.Equal(t, rune(591), c[526])
	assert.Equal(t, rune(0x2010), c[527])
	assert.Equal(t, rune(0x275e), c[len(c)-1])
	for _, r := range c {
		assert.NotEqual(t, rune(0x2728), r, "0x2728 is not a candidate")
	}
	c[0] = 'X' // must not leak into the next caller's copy
	assert.Equal(t, rune(32), Candidates()[0])
}

func TestClassifyScenarios(t *testing.T) {
	name, cat := Classify(65)
	assert.Equal(t, "LATIN CAPITAL LETTER A", name)
	assert.Equal(t, CategoryUppercase, cat)
	//
	name, cat = Classify(0x20ac)
	assert.Equal(t, "EURO SIGN", name)
	assert.Equal(t, CategoryCurrency, cat)
	//
	for cp, expected := range map[rune]struct {
		name string
		cat  Category
	}{
		'7':    {"DIGIT 7", CategoryNumbers},
		'q':    {"LATIN SMALL LETTER Q", CategoryLowercase},
		' ':    {"SPACE", CategoryBasicLatin},
		'~':    {"TILDE", CategoryBasicLatin},
		0xa9:   {"COPYRIGHT SIGN", CategoryLatin1},
		0x17f:  {"CHARACTER 017F", CategoryLatinExtended},
		0x2014: {"CHARACTER 2014", CategoryPunctuation},
		0x2122: {"TRADE MARK SIGN", CategoryOther},
		0x2192: {"CHARACTER 2192", CategoryArrows},
		0x221e: {"CHARACTER 221E", CategoryMathematical},
		0x25cf: {"CHARACTER 25CF", CategoryGeometric},
		0x2665: {"CHARACTER 2665", CategoryMiscellaneous},
		0x2714: {"CHARACTER 2714", CategoryDingbats},
	} {
		name, cat := Classify(cp)
		assert.Equal(t, expected.name, name, "name of %U", cp)
		assert.Equal(t, expected.cat, cat, "category of %U", cp)
	}
	name, cat = Classify(0x1f600)
	assert.Equal(t, "CHARACTER 1F600", name)
	assert.Equal(t, CategoryOther, cat)
}

func TestEveryCandidateClassifies(t *testing.T) {
	known := map[Category]bool{}
	for _, opt := range AllCategories() {
		known[opt.Value] = true
	}
	for _, cp := range Candidates() {
		n1, c1 := Classify(cp)
		n2, c2 := Classify(cp)
		assert.Equal(t, n1, n2)
		assert.Equal(t, c1, c2)
		assert.True(t, known[c1], "unknown category %q for %U", c1, cp)
		assert.NotEqual(t, CategoryAll, c1)
		assert.NotEmpty(t, n1)
	}
}

func TestUnicodeLabel(t *testing.T) {
	assert.Equal(t, "U+0041", UnicodeLabel('A'))
	assert.Equal(t, "U+20AC", UnicodeLabel(0x20ac))
	assert.Equal(t, "U+1F600", UnicodeLabel(0x1f600))
	rec := NewRecord(0xe9)
	assert.Equal(t, "é", rec.Character)
	assert.Equal(t, "U+00E9", rec.Unicode)
}

func records(cps ...rune) []Record {
	recs := make([]Record, len(cps))
	for i, cp := range cps {
		recs[i] = NewRecord(cp)
	}
	return recs
}

func TestFilterAllAndEmptyQuery(t *testing.T) {
	recs := records('B', 'a', '1', 0x20ac, 0x2192, '!')
	got := Filter(recs, CategoryAll, "")
	if diff := cmp.Diff(recs, got); diff != "" {
		t.Errorf("filter(all, \"\") changed the collection (-want +got):\n%s", diff)
	}
}

func TestFilterEuro(t *testing.T) {
	recs := records('E', 'U', 'R', 'O', 0x20ac, 0xa3)
	got := Filter(recs, CategoryAll, "EURO")
	require.Len(t, got, 1)
	assert.Equal(t, "EURO SIGN", got[0].Name)
	got = Filter(recs, CategoryAll, "euro")
	require.Len(t, got, 1)
	assert.Equal(t, rune(0x20ac), got[0].CodePoint)
}

func TestFilterCategoryThenQuery(t *testing.T) {
	recs := records('A', 'B', 'a', 'b', '1')
	got := Filter(recs, CategoryUppercase, "")
	assert.Equal(t, records('A', 'B'), got)
	got = Filter(recs, CategoryUppercase, "letter b")
	assert.Equal(t, records('B'), got)
	got = Filter(recs, CategoryLowercase, "u+0061")
	assert.Equal(t, records('a'), got)
	got = Filter(recs, Category("no-such-category"), "")
	assert.Empty(t, got)
	got = Filter(recs, CategoryAll, "ééé")
	assert.Empty(t, got)
}

func TestFilterNormalizesQuery(t *testing.T) {
	recs := records('e', 0xe9)
	got := Filter(recs, CategoryAll, "e\u0301") // decomposed é
	assert.Equal(t, records(0xe9), got)
}

func TestAvailableCategories(t *testing.T) {
	assert.Empty(t, AvailableCategories(nil))
	opts := AvailableCategories(records(0x20ac, 'a', '!', 'A'))
	values := make([]Category, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	assert.Equal(t, []Category{
		CategoryAll, CategoryBasicLatin, CategoryUppercase, CategoryLowercase, CategoryCurrency,
	}, values)
	assert.Equal(t, "All", opts[0].Label)
	assert.True(t, HasCategory(opts, CategoryCurrency))
	assert.False(t, HasCategory(opts, CategoryArrows))
	assert.Equal(t, "Misc Symbols", CategoryMiscellaneous.Label())
}
