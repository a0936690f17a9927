package glyphs

import "sync"

// Contiguous blocks of candidates, tested before the curated symbols.
var candidateBlocks = [...]struct{ from, to rune }{
	{32, 126},  // printable ASCII
	{160, 255}, // Latin-1 supplement
	{256, 383}, // Latin Extended-A
	{384, 591}, // Latin Extended-B
}

// Hand-picked symbols. The list is not contiguous on purpose: these are
// the symbols people usually look for when judging a font.
var curatedSymbols = []rune{
	// general punctuation
	0x2010, 0x2011, 0x2012, 0x2013, 0x2014, 0x2015, 0x2016, 0x2017, 0x2018,
	0x2019, 0x201a, 0x201b, 0x201c, 0x201d, 0x201e, 0x201f, 0x2020, 0x2021,
	0x2022, 0x2023, 0x2024, 0x2025, 0x2026, 0x2027, 0x2030, 0x2031, 0x2032,
	0x2033, 0x2034, 0x2035, 0x2036, 0x2037, 0x2038, 0x2039, 0x203a, 0x203b,
	0x203c, 0x203d, 0x203e,
	// currency
	0x20a0, 0x20a1, 0x20a2, 0x20a3, 0x20a4, 0x20a5, 0x20a6, 0x20a7, 0x20a8,
	0x20a9, 0x20aa, 0x20ab, 0x20ac, 0x20ad, 0x20ae, 0x20af, 0x20b0, 0x20b1,
	0x20b2, 0x20b3, 0x20b4, 0x20b5, 0x20b6, 0x20b7, 0x20b8, 0x20b9, 0x20ba,
	0x20bb, 0x20bc, 0x20bd,
	// arrows
	0x2190, 0x2191, 0x2192, 0x2193, 0x2194, 0x2195, 0x2196, 0x2197, 0x2198,
	0x2199, 0x219a, 0x219b, 0x219c, 0x219d, 0x219e, 0x219f, 0x21a0, 0x21a1,
	0x21a2, 0x21a3,
	// mathematical operators
	0x2200, 0x2201, 0x2202, 0x2203, 0x2204, 0x2205, 0x2206, 0x2207, 0x2208,
	0x2209, 0x220a, 0x220b, 0x220c, 0x220d, 0x220e, 0x220f, 0x2210, 0x2211,
	0x2212, 0x2213, 0x2214, 0x2215, 0x2216, 0x2217, 0x2218, 0x2219, 0x221a,
	0x221b, 0x221c, 0x221d, 0x221e, 0x221f, 0x2220, 0x2221, 0x2222, 0x2223,
	0x2224, 0x2225, 0x2226, 0x2227, 0x2228, 0x2229, 0x222a, 0x222b, 0x222c,
	0x222d, 0x222e, 0x222f, 0x2230, 0x2231,
	// geometric shapes
	0x25a0, 0x25a1, 0x25a2, 0x25a3, 0x25a4, 0x25a5, 0x25a6, 0x25a7, 0x25a8,
	0x25a9, 0x25b2, 0x25b3, 0x25b6, 0x25b7, 0x25bc, 0x25bd, 0x25c0, 0x25c1,
	0x25c6, 0x25c7, 0x25ca, 0x25cb, 0x25cf, 0x25d0, 0x25d1, 0x25e6,
	// miscellaneous symbols
	0x2600, 0x2601, 0x2602, 0x2603, 0x2660, 0x2663, 0x2665, 0x2666, 0x2669,
	0x266a, 0x266b, 0x266c, 0x266d, 0x266e, 0x266f,
	// dingbats, without 0x2728
	0x2701, 0x2702, 0x2703, 0x2704, 0x2705, 0x2706, 0x2707, 0x2708, 0x2709,
	0x270a, 0x270b, 0x270c, 0x270d, 0x270e, 0x270f, 0x2710, 0x2711, 0x2712,
	0x2713, 0x2714, 0x2715, 0x2716, 0x2717, 0x2718, 0x2719, 0x271a, 0x271b,
	0x271c, 0x271d, 0x271e, 0x271f, 0x2720, 0x2721, 0x2722, 0x2723, 0x2724,
	0x2725, 0x2726, 0x2727, 0x2729, 0x272a, 0x272b, 0x272c, 0x272d, 0x272e,
	0x272f, 0x2730, 0x2731, 0x2732, 0x2733, 0x2734, 0x2735, 0x2736, 0x2737,
	0x2738, 0x2739, 0x273a, 0x273b, 0x273c, 0x273d, 0x273e, 0x273f, 0x2740,
	0x2741, 0x2742, 0x2743, 0x2744, 0x2745, 0x2746, 0x2747, 0x2748, 0x2749,
	0x274a, 0x274b, 0x274c, 0x274d, 0x274e, 0x274f, 0x2750, 0x2751, 0x2752,
	0x2753, 0x2754, 0x2755, 0x2756, 0x2757, 0x2758, 0x2759, 0x275a, 0x275b,
	0x275c, 0x275d, 0x275e,
}

var candidates []rune
var candidatesOnce sync.Once

// Candidates returns the ordered list of code points to test a font for.
// The list is assembled once per process; every call returns a fresh copy
// of it, so clients may modify the slice they get.
//
// No de-duplication is performed.
func Candidates() []rune {
	candidatesOnce.Do(func() {
		candidates = assembleCandidates()
		tracer().Debugf("assembled %d glyph candidates", len(candidates))
	})
	c := make([]rune, len(candidates))
	copy(c, candidates)
	return c
}

func assembleCandidates() []rune {
	n := len(curatedSymbols)
	for _, b := range candidateBlocks {
		n += int(b.to-b.from) + 1
	}
	c := make([]rune, 0, n)
	for _, b := range candidateBlocks {
		for r := b.from; r <= b.to; r++ {
			c = append(c, r)
		}
	}
	return append(c, curatedSymbols...)
}
